package frontend

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

type TopBar struct {
	app.Compo
}

func (t *TopBar) onBannerClick(ctx app.Context, e app.Event) {
	ctx.Navigate("/")
}

func (t *TopBar) Render() app.UI {
	return app.Nav().Body(
		app.Ul().Body(
			app.Li().Body(
				app.Strong().
					Text("GoPairs").
					Style("cursor", "pointer").
					OnClick(t.onBannerClick),
			),
		),
		app.Ul().Body(
			app.Li().Body(
				app.A().Href("/").Text("New Game"),
			),
		),
	)
}
