package frontend

import (
	"fmt"

	"github.com/gopairs/gopairs/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// pairSymbols are the card faces, indexed by pair value - 1. The table
// covers every pair count the server accepts, not just the named
// difficulties, so raw pair-count games render real faces too.
var pairSymbols = []string{
	"🦊", "🐙", "🌵", "🚀", "🎩", "🍕", "🎲", "🌙",
	"🐳", "🍀", "🍓", "🦉", "🐝", "🎈", "⚓", "🎸",
	"🐘", "🌻", "🦋", "🍄", "🔔", "🐢", "🎁", "🌂",
	"🧩", "🐞", "🍩", "🪁", "🎯", "🐬", "🌈", "🔑",
}

func pairSymbol(value int) string {
	if value < 1 || value > len(pairSymbols) {
		return "?"
	}
	return pairSymbols[value-1]
}

// Game renders the board and relays card clicks to the server.
type Game struct {
	app.Compo
	Error string

	onUpdate func()
}

func (g *Game) OnAppUpdate(ctx app.Context) {
	klog.Infof("Game component: App update available, not reloading not to interrupt the game...")
}

func (g *Game) OnMount(ctx app.Context) {
	klog.Infof("Game component: OnMount called")
	g.onUpdate = func() {
		klog.Infof("Game component: Notify received")
		ctx.Dispatch(func(ctx app.Context) {
			g.Error = State.Error
		})
	}
	State.Listeners["game"] = g.onUpdate
}

func (g *Game) OnDismount() {
	klog.Infof("Game component: OnDismount called")
	delete(State.Listeners, "game")
}

func (g *Game) OnNav(ctx app.Context) {
	klog.Infof("Game component: OnNav called")
	if app.IsServer {
		// Prerender shows the connecting placeholder; the browser
		// build makes the actual connection.
		return
	}

	difficulty := app.Window().URL().Query().Get("difficulty")
	if difficulty == "" {
		difficulty = State.Difficulty
	}

	klog.Infof("Game component: Connecting with difficulty %s", difficulty)
	if err := State.ConnectWS(difficulty); err != nil {
		g.Error = fmt.Sprintf("Failed to connect: %v", err)
		klog.Errorf("Game component: Error connecting: %v", err)
	}
}

func (g *Game) onCardClick(id int) app.EventHandler {
	return func(ctx app.Context, e app.Event) {
		if State.Locked || State.Won {
			return
		}
		State.SendFlip(id)
	}
}

func (g *Game) onPlayAgain(ctx app.Context, e app.Event) {
	e.PreventDefault()
	State.SendNewGame(State.Difficulty)
}

func (g *Game) renderCard(c game.CardView) app.UI {
	class := "memory-card"
	label := ""
	switch c.State {
	case "revealed":
		class += " revealed"
	case "matched":
		class += " matched"
	}
	if c.PairValue != nil {
		label = pairSymbol(*c.PairValue)
	}

	faceUp := c.State != "hidden"
	return app.Button().
		Class(class).
		Disabled(faceUp || State.Locked || State.Won).
		OnClick(g.onCardClick(c.ID)).
		Text(label)
}

func (g *Game) renderBoard() app.UI {
	var cells []app.UI
	for _, c := range State.Cards {
		cells = append(cells, g.renderCard(c))
	}

	status := fmt.Sprintf("Moves: %d", State.Moves)
	if State.Locked {
		status += ". No match, look again!"
	}

	var banner app.UI = app.Text("")
	if State.Won {
		banner = app.Article().Class("win-banner").Body(
			app.H2().Text(fmt.Sprintf("You won in %d moves! 🎉", State.Moves)),
			app.Button().Text("Play Again").OnClick(g.onPlayAgain),
		)
	}

	return app.Div().Body(
		app.P().Class("move-counter").Text(status),
		app.Div().Class("board").Body(cells...),
		banner,
	)
}

func (g *Game) Render() app.UI {
	var content app.UI
	switch {
	case g.Error != "":
		content = app.Article().Body(
			app.H2().Text("Game Error"),
			app.P().Style("color", "red").Text(g.Error),
			app.A().Href("/").Text("Return to Home"),
		)
	case !State.Joined:
		content = app.Div().Aria("busy", "true").Text("Connecting to game...")
	default:
		content = g.renderBoard()
	}

	return app.Main().Class("container").Body(
		&TopBar{},
		content,
	)
}
