package features

import (
	"github.com/thornvale/emberwood/internal/app"
	"github.com/thornvale/emberwood/internal/engine"
)

// Puzzle encounter template ids.
const (
	TemplatePickyMagicDoor engine.TemplateID = "PICKY_MAGIC_DOOR"
	TemplateNumberStones   engine.TemplateID = "ENCHANTED_NUMBER_STONES"
	TemplateMirrorGuardian engine.TemplateID = "MIRROR_RIDDLE_GUARDIAN"
	TemplatePuzzleSuccess  engine.TemplateID = "PUZZLE_SUCCESS"
	TemplatePuzzleCreative engine.TemplateID = "PUZZLE_CREATIVE"
	TemplatePuzzleFailure  engine.TemplateID = "PUZZLE_FAILURE"
)

// RegisterPuzzle wires the puzzle encounters: a rhyming door, a number
// sequence, and a riddling mirror. Wrong answers still teach something.
func RegisterPuzzle(svc *app.Service) error {
	set := engine.FeatureSet{
		Name:  "puzzle",
		Start: TemplatePickyMagicDoor,
		Templates: []engine.Template{
			{
				ID: TemplatePickyMagicDoor,
				Content: engine.StaticContent(map[string]any{
					"title":       "🚪 A Finicky Magic Door",
					"description": "This ornate door clears its throat importantly before speaking in perfect rhyme.",
					"puzzle": map[string]string{
						"type":       "completion",
						"question":   "I open for those who can complete my phrase: 'The early bird catches the ___'",
						"difficulty": "easy",
					},
					"character": map[string]string{"name": "Door McRhymerson", "emoji": "🚪"},
					"dialogue":  "Ahem! I shall test your wit with my most clever verse!",
				}),
				Actions: []engine.Action{
					{ID: "ANSWER_WORM", Label: "Answer: Worm", Target: engine.Dynamic()},
					{ID: "ANSWER_CREATIVELY", Label: "Answer: Bus!", Target: engine.Dynamic()},
					{ID: "ASK_FOR_HINT", Label: "Ask for a Hint", Target: engine.Dynamic()},
					{ID: "TRY_TO_FORCE", Label: "Try to Force It Open", Target: engine.Dynamic()},
					{ID: "WALK_AWAY", Label: "Not Worth It", Target: engine.Complete()},
				},
			},
			{
				ID: TemplateNumberStones,
				Content: engine.StaticContent(map[string]any{
					"title":       "🔢 Mystical Number Stones",
					"description": "Three glowing stones hover in the air, displaying numbers: 2, 4, ?. The third stone hums expectantly.",
					"puzzle": map[string]string{
						"type":       "pattern",
						"question":   "What number comes next in the sequence: 2, 4, ?",
						"difficulty": "easy",
					},
					"character": map[string]string{"name": "Ancient Stones", "emoji": "🔢"},
					"dialogue":  "We test the mathematical mind. Can you see our pattern?",
				}),
				Actions: []engine.Action{
					{ID: "PRESS_SIX", Label: "Press 6", Target: engine.Dynamic()},
					{ID: "PRESS_EIGHT", Label: "Press 8", Target: engine.Dynamic()},
					{ID: "PRESS_RANDOM", Label: "Press 42", Target: engine.Dynamic()},
					{ID: "ASK_PATTERN", Label: "Ask What Pattern", Target: engine.Dynamic()},
					{ID: "WALK_AWAY", Label: "Math is Hard", Target: engine.Complete()},
				},
			},
			{
				ID: TemplateMirrorGuardian,
				Content: engine.StaticContent(map[string]any{
					"title":       "🪞 A Wise Mirror Guardian",
					"description": "An ornate mirror shimmers with intelligence, its surface showing not your reflection but swirling words.",
					"puzzle": map[string]string{
						"type":       "riddle",
						"question":   "What has keys but no locks, space but no room, and you can enter but not go inside?",
						"difficulty": "medium",
					},
					"character": map[string]string{"name": "Mirror of Mysteries", "emoji": "🪞"},
					"dialogue":  "Gaze upon my riddle, seeker of wisdom...",
				}),
				Actions: []engine.Action{
					{ID: "ANSWER_KEYBOARD", Label: "Answer: Keyboard", Target: engine.Dynamic()},
					{ID: "MAKE_WILD_GUESS", Label: "Answer: A Sandwich!", Target: engine.Dynamic()},
					{ID: "ASK_FOR_CLUE", Label: "Ask for a Clue", Target: engine.Dynamic()},
					{ID: "COMPLIMENT_MIRROR", Label: "Compliment the Mirror", Target: engine.Dynamic()},
					{ID: "WALK_AWAY", Label: "Too Cryptic", Target: engine.Complete()},
				},
			},
			{
				ID: TemplatePuzzleSuccess,
				Content: engine.StaticContent(map[string]any{
					"title":       "🏆 Puzzle Solved!",
					"description": "Your clever thinking has paid off! You feel a surge of satisfaction from solving the challenge.",
					"dialogue":    "Well done! Your mind is as sharp as your determination.",
				}),
			},
			{
				ID: TemplatePuzzleCreative,
				Content: engine.StaticContent(map[string]any{
					"title":       "💡 Creative Solution!",
					"description": "Your unconventional approach impressed even the puzzle maker. Sometimes thinking outside the box is the best answer.",
					"dialogue":    "Brilliant! I hadn't thought of that approach before.",
				}),
			},
			{
				ID: TemplatePuzzleFailure,
				Content: engine.StaticContent(map[string]any{
					"title":       "🤔 Learning Experience",
					"description": "That didn't work out as planned, but you gained valuable experience in the attempt.",
					"dialogue":    "Not quite right, but your effort is commendable. Every attempt teaches us something.",
				}),
			},
		},
	}
	if err := svc.RegisterFeatureSet(set); err != nil {
		return err
	}

	outcomes := []socialOutcome{
		{TemplatePickyMagicDoor, "ANSWER_WORM", 25, "Clever", TemplatePuzzleSuccess},
		{TemplatePickyMagicDoor, "ANSWER_CREATIVELY", 30, "Creative", TemplatePuzzleCreative},
		{TemplatePickyMagicDoor, "ASK_FOR_HINT", 15, "Wise Questioner", TemplatePuzzleSuccess},
		{TemplatePickyMagicDoor, "TRY_TO_FORCE", 10, "Determined Soul", TemplatePuzzleFailure},
		{TemplateNumberStones, "PRESS_SIX", 25, "Logical", TemplatePuzzleSuccess},
		{TemplateNumberStones, "PRESS_EIGHT", 15, "Math Enthusiast", TemplatePuzzleFailure},
		{TemplateNumberStones, "PRESS_RANDOM", 20, "Spontaneous", TemplatePuzzleCreative},
		{TemplateNumberStones, "ASK_PATTERN", 10, "Thoughtful Student", TemplatePuzzleSuccess},
		{TemplateMirrorGuardian, "ANSWER_KEYBOARD", 30, "Wise", TemplatePuzzleSuccess},
		{TemplateMirrorGuardian, "MAKE_WILD_GUESS", 15, "Bold", TemplatePuzzleCreative},
		{TemplateMirrorGuardian, "ASK_FOR_CLUE", 20, "Strategic Thinker", TemplatePuzzleSuccess},
		{TemplateMirrorGuardian, "COMPLIMENT_MIRROR", 10, "Charming", TemplatePuzzleCreative},
	}
	return registerOutcomes(svc, outcomes)
}
