package frontend

import (
	"fmt"

	"github.com/gopairs/gopairs/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

// Home is the landing page: pick a difficulty and start a game.
type Home struct {
	app.Compo
	Difficulty string
}

func (h *Home) OnMount(ctx app.Context) {
	klog.V(1).Infof("Home: OnMount called")
	h.Difficulty = State.Difficulty
}

func (h *Home) OnAppUpdate(ctx app.Context) {
	klog.Infof("Home component: App update available, reloading...")
	ctx.Reload()
}

func (h *Home) onDifficultyChange(ctx app.Context, e app.Event) {
	h.Difficulty = ctx.JSSrc().Get("value").String()
	State.Difficulty = h.Difficulty
}

func (h *Home) onStart(ctx app.Context, e app.Event) {
	e.PreventDefault()
	difficulty := h.Difficulty
	if difficulty == "" {
		difficulty = game.DefaultDifficulty
	}
	ctx.Navigate("/play?difficulty=" + difficulty)
}

func (h *Home) Render() app.UI {
	selected := h.Difficulty
	if selected == "" {
		selected = game.DefaultDifficulty
	}

	var options []app.UI
	for _, d := range game.Difficulties() {
		label := fmt.Sprintf("%s (%d pairs)", capitalize(d.Label), d.PairCount)
		options = append(options, app.Option().
			Value(d.Label).
			Selected(d.Label == selected).
			Text(label))
	}

	return app.Main().Class("container").Body(
		&TopBar{},
		app.Article().Body(
			app.Header().Body(
				app.H2().Text("New Game"),
			),
			app.Form().OnSubmit(h.onStart).Body(
				app.Label().For("difficulty").Text("Difficulty"),
				app.Select().
					ID("difficulty").
					Name("difficulty").
					OnChange(h.onDifficultyChange).
					Body(options...),
				app.Button().Type("submit").Text("Start Game"),
			),
		),
		app.Article().Body(
			app.Header().Body(
				app.H3().Text("How to Play"),
			),
			app.Ul().Body(
				app.Li().Text("All cards start face-down. Flip two cards per turn."),
				app.Li().Text("If they show the same symbol, they stay face-up."),
				app.Li().Text("If not, both flip back after a short moment."),
				app.Li().Text("Match every pair to win. Fewer moves is better."),
			),
		),
	)
}
