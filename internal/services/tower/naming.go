package tower

import (
	"fmt"

	"github.com/cmai/strata/internal/models"
)

// OptionName derives the display label for an option from its tower,
// ignoring any user-assigned override:
//
//	quota-share layer:  "$5M po $15M", plus " xs $10M" when attaching above ground
//	excess layer:       "$5M xs $10M"
//	primary ground:     "$5M x $25K" (retention, defaulting to $25,000)
//
// An empty tower names the option "Option".
func (s *Service) OptionName(option *models.QuoteOption) string {
	if option == nil || len(option.Tower) == 0 {
		return "Option"
	}

	idx := option.Tower.OursIndex(s.marker)
	if idx < 0 {
		idx = 0
	}
	layer := option.Tower[idx]
	attachment := s.CalculateAttachment(option.Tower, idx)

	if layer.InQuotaShare() {
		name := fmt.Sprintf("%s po %s", models.FormatMoney(layer.Limit), models.FormatMoney(layer.QuotaShare))
		if attachment > 0 {
			name += " xs " + models.FormatMoney(attachment)
		}
		return name
	}

	if attachment > 0 {
		return fmt.Sprintf("%s xs %s", models.FormatMoney(layer.Limit), models.FormatMoney(attachment))
	}

	retention := option.Tower[0].Retention
	if retention <= 0 {
		retention = models.DefaultRetention
	}
	return fmt.Sprintf("%s x %s", models.FormatMoney(layer.Limit), models.FormatMoney(retention))
}

// DisplayName returns the user-assigned name when set, otherwise the derived
// option name.
func (s *Service) DisplayName(option *models.QuoteOption) string {
	if option != nil && option.QuoteName != "" {
		return option.QuoteName
	}
	return s.OptionName(option)
}
