package widget

// TabStyle selects TabBar's visual treatment of the active tab.
type TabStyle uint8

const (
	Underline TabStyle = iota
	Filled
	Pill
)

// TabBar lays out a row of equal-width tab labels and highlights
// ActiveIndex per Style.
type TabBar struct {
	Labels      []string
	ActiveIndex int
	Style       TabStyle
}

func (t TabBar) Measure(ctx *DrawContext, availW, availH int) (int, int) {
	h, _ := ctx.Backend.MeasureTextHeight(ctx.Theme.FontSize.MD)
	h += ctx.Theme.Spacing.Medium
	return availW, clampInt(h, 0, availH)
}

func (t TabBar) Draw(ctx *DrawContext, x, y, w, h int) error {
	th := ctx.Theme
	if len(t.Labels) == 0 {
		return nil
	}
	tabW := w / len(t.Labels)

	for i, label := range t.Labels {
		tx := x + i*tabW
		active := i == t.ActiveIndex

		switch t.Style {
		case Filled:
			if active {
				if err := ctx.Backend.FillRect(tx, y, tabW, h, th.Primary); err != nil {
					return err
				}
			}
		case Pill:
			if active {
				pad := th.Spacing.Small
				if err := ctx.Backend.FillRoundedRect(tx+pad, y+pad, tabW-pad*2, h-pad*2, (h-pad*2)/2, th.Primary); err != nil {
					return err
				}
			}
		default: // Underline
			if active {
				lineY := y + h - 2
				if err := ctx.Backend.FillRect(tx, lineY, tabW, 2, th.Primary); err != nil {
					return err
				}
			}
		}

		textColor := th.DimText
		if active {
			textColor = th.Text
		}
		tw, _ := ctx.Backend.MeasureText(label, th.FontSize.MD)
		th2, _ := ctx.Backend.MeasureTextHeight(th.FontSize.MD)
		lx := tx + (tabW-tw)/2
		ly := y + (h-th2)/2
		if err := ctx.Backend.DrawText(label, lx, ly, th.FontSize.MD, textColor); err != nil {
			return err
		}
	}
	return nil
}
