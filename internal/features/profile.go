package features

import (
	"context"

	"github.com/thornvale/emberwood/internal/app"
	"github.com/thornvale/emberwood/internal/engine"
)

// TemplateProfileDisplay is the terminal profile projection template.
const TemplateProfileDisplay engine.TemplateID = "PROFILE_DISPLAY"

// RegisterProfile wires the profile feature: a single terminal template
// whose content is the live player projection.
func RegisterProfile(svc *app.Service) error {
	return svc.RegisterFeatureSet(engine.FeatureSet{
		Name:  "profile",
		Start: TemplateProfileDisplay,
		Templates: []engine.Template{
			{
				ID: TemplateProfileDisplay,
				Content: engine.DynamicContent(func(ctx context.Context, userID string) (any, error) {
					return svc.GetProfile(ctx, userID)
				}),
			},
		},
	})
}
