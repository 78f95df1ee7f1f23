/*
Package fabula is a branching narrative engine driven by a plain-text
script language. A script declares chapters, branches, variables and
choices; the engine parses it once and plays any number of sessions over
the resulting document.

The engine separates the story graph (Document) from playback state
(Runtime), so hosts decide how to present paragraphs and collect input.
This keeps the core embeddable in any interface: a terminal player, an
HTTP service, or a larger game loop.

# Script language

A script is line-oriented. Metadata directives open the file, then
chapters group branches, and branches carry prose, actions and choices:

	@title: The Cursed Lighthouse
	@start: shore
	! coins = 5

	@chapter one: Arrival
	# shore: The Shore
	Waves crash against the rocks.
	You count __coins__ coins in your pocket.

	! coins += 3
	* [coins >= 10] Buy a lantern -> lighthouse
	* Climb in the dark -> lighthouse

Actions run once when a branch is entered. Choice conditions may carry
side effects ("gold >= 5 and gold -= 5"); they apply only when the
choice is actually selected, never during rendering.

# Usage

	doc, err := fabula.Load(text)
	if err != nil {
		log.Fatal(err)
	}

	rt, err := fabula.NewRuntime(doc)
	if err != nil {
		log.Fatal(err)
	}

	for {
		view := rt.Render()
		// present view.Paragraphs and view.Choices, read input
		if view.Ended {
			break
		}
		if err := rt.Select(index); err != nil {
			// disabled choice, bad index or evaluation failure
		}
	}

Sessions serialize through Snapshot and Restore; the pkg/ports and
pkg/adapters packages provide in-memory and Redis-backed stores for
hosts that need persistence.
*/
package fabula
