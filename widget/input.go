package widget

import "strings"

// InputField is a single-line text field with a caret and an optional
// password mask. The host owns the text buffer and caret blink timing;
// InputField only renders the state it's given.
type InputField struct {
	Text          string
	CursorPos     int
	Password      bool
	Focused       bool
	CursorVisible bool // host toggles this on a blink interval
	Placeholder   string
}

const passwordMaskRune = '*'

func (f InputField) displayText() string {
	if f.Password {
		return strings.Repeat(string(passwordMaskRune), len([]rune(f.Text)))
	}
	return f.Text
}

func (f InputField) Measure(ctx *DrawContext, availW, availH int) (int, int) {
	th, _ := ctx.Backend.MeasureTextHeight(ctx.Theme.FontSize.MD)
	pad := ctx.Theme.Spacing.Small
	return availW, clampInt(th+pad*2, 0, availH)
}

func (f InputField) Draw(ctx *DrawContext, x, y, w, h int) error {
	th := ctx.Theme
	border := th.Border
	if f.Focused {
		border = th.Primary
	}
	if err := ctx.Backend.FillRoundedRect(x, y, w, h, th.CornerRadii.Small, th.Surface); err != nil {
		return err
	}
	if err := ctx.Backend.StrokeRoundedRect(x, y, w, h, th.CornerRadii.Small, 1, border); err != nil {
		return err
	}

	pad := th.Spacing.Small
	lineH, _ := ctx.Backend.MeasureTextHeight(th.FontSize.MD)
	ty := y + (h-lineH)/2
	tx := x + pad

	display := f.displayText()
	textColor := th.Text
	if display == "" && f.Placeholder != "" {
		display = f.Placeholder
		textColor = th.DimText
	}
	if err := ctx.Backend.DrawText(display, tx, ty, th.FontSize.MD, textColor); err != nil {
		return err
	}

	if f.Focused && f.CursorVisible {
		prefix := []rune(f.displayText())
		if f.CursorPos < len(prefix) {
			prefix = prefix[:f.CursorPos]
		}
		cw, _ := ctx.Backend.MeasureText(string(prefix), th.FontSize.MD)
		return ctx.Backend.DrawLine(tx+cw, ty, tx+cw, ty+lineH, 1, th.Text)
	}
	return nil
}
