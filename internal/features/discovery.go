package features

import (
	"github.com/thornvale/emberwood/internal/app"
	"github.com/thornvale/emberwood/internal/engine"
)

// Discovery encounter template ids.
const (
	TemplateButterflyConference engine.TemplateID = "BUTTERFLY_CONFERENCE"
	TemplateUpsideDownPuddle    engine.TemplateID = "UPSIDE_DOWN_PUDDLE"
	TemplateBookHouse           engine.TemplateID = "BOOK_HOUSE"
	TemplateDiscoveryDelight    engine.TemplateID = "DISCOVERY_DELIGHT"
	TemplateDiscoveryWonder     engine.TemplateID = "DISCOVERY_WONDER"
	TemplateDiscoveryMagic      engine.TemplateID = "DISCOVERY_MAGIC"
)

// RegisterDiscovery wires the whimsical discovery encounters: arguing
// butterflies, an impossible puddle, and a cottage built from books.
func RegisterDiscovery(svc *app.Service) error {
	set := engine.FeatureSet{
		Name:  "discovery",
		Start: TemplateButterflyConference,
		Templates: []engine.Template{
			{
				ID: TemplateButterflyConference,
				Content: engine.StaticContent(map[string]any{
					"title":       "🦋 A Butterfly Conference",
					"description": "A circle of butterflies appears to be having a heated debate, gesticulating dramatically with their colorful wings.",
					"environment": map[string]string{"type": "meadow", "oddity": "butterfly politics"},
				}),
				Actions: []engine.Action{
					{ID: "EAVESDROP_ON_BUTTERFLIES", Label: "Eavesdrop Quietly", Target: engine.Dynamic()},
					{ID: "JOIN_BUTTERFLY_DEBATE", Label: "Join the Debate", Target: engine.Dynamic()},
					{ID: "MEDIATE_BUTTERFLY_DISPUTE", Label: "Offer to Mediate", Target: engine.Dynamic()},
					{ID: "WALK_AWAY", Label: "Quietly Back Away", Target: engine.Complete()},
				},
			},
			{
				ID: TemplateUpsideDownPuddle,
				Content: engine.StaticContent(map[string]any{
					"title":       "🌈 An Impossible Puddle",
					"description": "This puddle reflects the sky beneath it, but shows fish swimming lazily through fluffy white clouds.",
					"environment": map[string]string{"type": "forest clearing", "oddity": "dimensional anomaly"},
				}),
				Actions: []engine.Action{
					{ID: "STICK_HAND_IN_PUDDLE", Label: "Stick Hand In", Target: engine.Dynamic()},
					{ID: "DROP_COIN_IN_PUDDLE", Label: "Drop a Coin In", Target: engine.Dynamic()},
					{ID: "DRINK_FROM_PUDDLE", Label: "Take a Sip", Target: engine.Dynamic()},
					{ID: "WALK_AWAY", Label: "Too Weird for Me", Target: engine.Complete()},
				},
			},
			{
				ID: TemplateBookHouse,
				Content: engine.StaticContent(map[string]any{
					"title":       "📚 A Literary Cottage",
					"description": "A cozy cottage built entirely from stacked books. The door appears to be a particularly thick dictionary that creaks when the wind blows.",
					"environment": map[string]string{"type": "enchanted forest", "oddity": "sentient architecture"},
				}),
				Actions: []engine.Action{
					{ID: "KNOCK_ON_BOOK_DOOR", Label: "Knock Politely", Target: engine.Dynamic()},
					{ID: "READ_THE_WALLS", Label: "Read the Walls", Target: engine.Dynamic()},
					{ID: "BORROW_A_BOOK", Label: "Try to Borrow a Book", Target: engine.Dynamic()},
					{ID: "WALK_AWAY", Label: "Leave It in Peace", Target: engine.Complete()},
				},
			},
			{
				ID: TemplateDiscoveryDelight,
				Content: engine.StaticContent(map[string]any{
					"title":       "✨ Pure Delight",
					"description": "This wonderful discovery fills you with joy and wonder at the magic of the world.",
				}),
			},
			{
				ID: TemplateDiscoveryWonder,
				Content: engine.StaticContent(map[string]any{
					"title":       "🌟 Sense of Wonder",
					"description": "You're left in awe by what you've experienced. The world feels more magical than before.",
				}),
			},
			{
				ID: TemplateDiscoveryMagic,
				Content: engine.StaticContent(map[string]any{
					"title":       "🎭 Magical Encounter",
					"description": "Something truly extraordinary has happened. You feel touched by magic itself.",
				}),
			},
		},
	}
	if err := svc.RegisterFeatureSet(set); err != nil {
		return err
	}

	outcomes := []socialOutcome{
		{TemplateButterflyConference, "EAVESDROP_ON_BUTTERFLIES", 15, "Butterfly Translator", TemplateDiscoveryWonder},
		{TemplateButterflyConference, "JOIN_BUTTERFLY_DEBATE", 20, "Controversial Pollinator", TemplateDiscoveryWonder},
		{TemplateButterflyConference, "MEDIATE_BUTTERFLY_DISPUTE", 25, "Diplomat", TemplateDiscoveryMagic},
		{TemplateUpsideDownPuddle, "STICK_HAND_IN_PUDDLE", 15, "Brave", TemplateDiscoveryMagic},
		{TemplateUpsideDownPuddle, "DROP_COIN_IN_PUDDLE", 10, "Fish Apologizer", TemplateDiscoveryWonder},
		{TemplateUpsideDownPuddle, "DRINK_FROM_PUDDLE", 20, "Rainbow Burper", TemplateDiscoveryMagic},
		{TemplateBookHouse, "KNOCK_ON_BOOK_DOOR", 25, "Polite", TemplateDiscoveryDelight},
		{TemplateBookHouse, "READ_THE_WALLS", 15, "Scholar", TemplateDiscoveryWonder},
		{TemplateBookHouse, "BORROW_A_BOOK", 10, "Polite Patron", TemplateDiscoveryMagic},
	}
	return registerOutcomes(svc, outcomes)
}
