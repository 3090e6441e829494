// Package resources builds sample pass records for demos and smoke tests.
// Real values come from the caller's own systems.
package resources

import "github.com/vbncursed/vkr/wallet-service/internal/models"

const defaultLogoURI = "https://developers.google.com/static/pay/passes/images/logo.png"

// LoyaltyClass — минимальный валидный класс программы лояльности
func LoyaltyClass(classID, issuerName, programName string) models.Record {
	return models.Record{
		Vertical: models.VerticalLoyalty,
		Kind:     models.KindClass,
		ID:       classID,
		Attrs: map[string]any{
			"issuerName":   issuerName,
			"programName":  programName,
			"reviewStatus": "underReview",
			"programLogo": map[string]any{
				"sourceUri": map[string]any{"uri": defaultLogoURI},
			},
		},
	}
}

// LoyaltyObject — карта участника: QR с номером счёта, ссылки и время обновления
func LoyaltyObject(objectID, classID, accountID, accountName string, links []string) models.Record {
	attrs := map[string]any{
		"state":       "active",
		"accountId":   accountID,
		"accountName": accountName,
		"barcode": map[string]any{
			"type":          "qrCode",
			"value":         accountID,
			"alternateText": accountID,
		},
		"infoModuleData": map[string]any{
			"showLastUpdateTime": true,
		},
	}
	if len(links) > 0 {
		uris := make([]any, 0, len(links))
		for _, l := range links {
			uris = append(uris, map[string]any{"uri": l})
		}
		attrs["linksModuleData"] = map[string]any{"uris": uris}
	}
	return models.Record{
		Vertical: models.VerticalLoyalty,
		Kind:     models.KindObject,
		ID:       objectID,
		ClassID:  classID,
		Attrs:    attrs,
	}
}
