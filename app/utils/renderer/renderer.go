package renderer

import (
	"html/template"

	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

func New() *render.Render {
	toman := accounting.Accounting{Symbol: "تومان", Precision: 0, Format: "%v %s"}

	return render.New(render.Options{
		Layout:     "layout",
		Extensions: []string{".html"},
		Funcs: []template.FuncMap{
			{
				"money": func(amount decimal.Decimal) string {
					return toman.FormatMoneyDecimal(amount)
				},
				// post bodies are authored HTML, not user input
				"raw": func(s string) template.HTML { return template.HTML(s) },
				"add": func(a, b int) int { return a + b },
				"sub": func(a, b int) int { return a - b },
				"min": func(a, b int) int {
					if a < b {
						return a
					}
					return b
				},
			},
		},
	})
}
