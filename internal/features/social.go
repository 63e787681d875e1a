package features

import (
	"context"

	"github.com/thornvale/emberwood/internal/app"
	"github.com/thornvale/emberwood/internal/engine"
	"github.com/thornvale/emberwood/internal/reward"
)

// Social encounter template ids.
const (
	TemplateJokester      engine.TemplateID = "JOKESTER_ENCOUNTER"
	TemplateRiddler       engine.TemplateID = "RIDDLER_ENCOUNTER"
	TemplateGossip        engine.TemplateID = "GOSSIP_MERCHANT"
	TemplateSocialSuccess engine.TemplateID = "SOCIAL_SUCCESS"
	TemplateSocialFailure engine.TemplateID = "SOCIAL_FAILURE"
	TemplateSocialNeutral engine.TemplateID = "SOCIAL_NEUTRAL"
)

// socialOutcome binds a dynamic social action to its payout.
type socialOutcome struct {
	template engine.TemplateID
	action   engine.ActionID
	xp       int
	title    string
	next     engine.TemplateID
}

// RegisterSocial wires the three social encounters: a jokester, a riddler,
// and a gossiping merchant. Every choice pays some XP and a one-time title;
// walking away is always free.
func RegisterSocial(svc *app.Service) error {
	set := engine.FeatureSet{
		Name:  "social",
		Start: TemplateJokester,
		Templates: []engine.Template{
			{
				ID: TemplateJokester,
				Content: engine.StaticContent(map[string]any{
					"title":       "🎭 A Traveling Jokester",
					"description": "A colorful performer juggles while telling terrible puns to a small crowd.",
					"character":   map[string]string{"name": "Bobo the Entertainer", "emoji": "🎭"},
					"dialogue":    "Why don't skeletons fight each other? They don't have the guts! *slaps knee*",
				}),
				Actions: []engine.Action{
					{ID: "LAUGH_AT_JOKE", Label: "Laugh Heartily", Target: engine.Dynamic()},
					{ID: "GROAN_AT_JOKE", Label: "Groan Dramatically", Target: engine.Dynamic()},
					{ID: "TELL_JOKE", Label: "Tell Your Own Joke", Target: engine.Dynamic()},
					{ID: "WALK_AWAY", Label: "Walk Away", Target: engine.Complete()},
				},
			},
			{
				ID: TemplateRiddler,
				Content: engine.StaticContent(map[string]any{
					"title":       "🧙 A Mysterious Riddler",
					"description": "An old sage sits cross-legged beneath a gnarled tree, eyes twinkling with mischief.",
					"character":   map[string]string{"name": "Sage Puzzleton", "emoji": "🧙"},
					"dialogue":    "I speak without a mouth and hear without ears. Have no body, but come alive with the wind. What am I?",
				}),
				Actions: []engine.Action{
					{ID: "THINK_ABOUT_RIDDLE", Label: "Think Carefully", Target: engine.Dynamic()},
					{ID: "GIVE_UP_ON_RIDDLE", Label: "That's Too Hard!", Target: engine.Dynamic()},
					{ID: "ANSWER_RIDDLE", Label: "An Echo!", Target: engine.Dynamic()},
					{ID: "WALK_AWAY", Label: "Not Interested", Target: engine.Complete()},
				},
			},
			{
				ID: TemplateGossip,
				Content: engine.StaticContent(map[string]any{
					"title":       "🛒 A Chatty Merchant",
					"description": "A well-dressed trader arranges colorful wares while eagerly scanning for someone to talk to.",
					"character":   map[string]string{"name": "Gabby McTalk", "emoji": "🛒"},
					"dialogue":    "Psst! Did you hear about the baker's daughter and the blacksmith's son? Oh, the DRAMA!",
				}),
				Actions: []engine.Action{
					{ID: "LISTEN_TO_GOSSIP", Label: "Listen Intently", Target: engine.Dynamic()},
					{ID: "REJECT_GOSSIP", Label: "Not Interested in Gossip", Target: engine.Dynamic()},
					{ID: "SHARE_GOSSIP", Label: "Share Your Own News", Target: engine.Dynamic()},
					{ID: "WALK_AWAY", Label: "Keep Moving", Target: engine.Complete()},
				},
			},
			{
				ID: TemplateSocialSuccess,
				Content: engine.StaticContent(map[string]any{
					"title":       "✨ Encounter Complete",
					"description": "The encounter ends on a positive note. You feel enriched by the experience.",
				}),
			},
			{
				ID: TemplateSocialFailure,
				Content: engine.StaticContent(map[string]any{
					"title":       "😅 Things Go Awry",
					"description": "Well, that didn't go as planned. You learn from the experience anyway.",
				}),
			},
			{
				ID: TemplateSocialNeutral,
				Content: engine.StaticContent(map[string]any{
					"title":       "🤝 A Pleasant Exchange",
					"description": "The interaction was brief but pleasant. You both part ways with a smile.",
				}),
			},
		},
	}
	if err := svc.RegisterFeatureSet(set); err != nil {
		return err
	}

	outcomes := []socialOutcome{
		{TemplateJokester, "LAUGH_AT_JOKE", 15, "Good Sport", TemplateSocialSuccess},
		{TemplateJokester, "GROAN_AT_JOKE", 5, "Honest Critic", TemplateSocialNeutral},
		{TemplateJokester, "TELL_JOKE", 20, "Fellow Entertainer", TemplateSocialSuccess},
		{TemplateRiddler, "THINK_ABOUT_RIDDLE", 10, "Deep Thinker", TemplateSocialNeutral},
		{TemplateRiddler, "GIVE_UP_ON_RIDDLE", 5, "Humble Student", TemplateSocialFailure},
		{TemplateRiddler, "ANSWER_RIDDLE", 25, "Wise", TemplateSocialSuccess},
		{TemplateGossip, "LISTEN_TO_GOSSIP", 15, "Listener", TemplateSocialSuccess},
		{TemplateGossip, "REJECT_GOSSIP", 10, "Principled Person", TemplateSocialNeutral},
		{TemplateGossip, "SHARE_GOSSIP", 20, "Social Butterfly", TemplateSocialSuccess},
	}
	return registerOutcomes(svc, outcomes)
}

// registerOutcomes installs a handler per outcome that awards the XP and
// title, then routes to the outcome's terminal template.
func registerOutcomes(svc *app.Service, outcomes []socialOutcome) error {
	for _, o := range outcomes {
		o := o
		fn := func(ctx context.Context, userID string) (engine.Result, error) {
			var bundle reward.Bundle
			if err := awardXP(ctx, svc, userID, o.xp, &bundle); err != nil {
				return engine.Result{}, err
			}
			if err := awardTitle(ctx, svc, userID, o.title, &bundle); err != nil {
				return engine.Result{}, err
			}
			return engine.Result{Next: o.next, Rewards: &bundle}, nil
		}
		if err := svc.RegisterHandler(o.template, o.action, fn); err != nil {
			return err
		}
	}
	return nil
}
