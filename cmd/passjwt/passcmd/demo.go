package passcmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vbncursed/vkr/wallet-service/internal/models"
	"github.com/vbncursed/vkr/wallet-service/internal/resources"
	"github.com/vbncursed/vkr/wallet-service/internal/service"
	"github.com/vbncursed/vkr/wallet-service/internal/util"
)

const (
	accountIDFlagName   = "account-id"
	accountNameFlagName = "account-name"
	programFlagName     = "program"
	linkFlagName        = "link"

	demoClassSuffix = "demo_loyalty_class"
)

// createDemoCmd — сквозной сценарий на программе лояльности: класс, объект, токен.
// Онлайн ресурсы регистрируются и выпускается skinny-токен, офлайн — fat.
func createDemoCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Issue a sample loyalty card",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if o.issuerID == "" {
				return fmt.Errorf("--%s is required", issuerIDFlagName)
			}
			accountID, _ := cmd.Flags().GetString(accountIDFlagName)
			accountName, _ := cmd.Flags().GetString(accountNameFlagName)
			program, _ := cmd.Flags().GetString(programFlagName)
			links, _ := cmd.Flags().GetStringSlice(linkFlagName)

			classID := util.ResourceID(o.issuerID, demoClassSuffix)
			objectID := util.ResourceID(o.issuerID, accountID)
			if objectID == "" {
				return fmt.Errorf("--%s is required", accountIDFlagName)
			}
			class := resources.LoyaltyClass(classID, program, program)
			object := resources.LoyaltyObject(objectID, classID, accountID, accountName, links)

			svc, err := o.newService(cmd.Context(), true)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			var res service.IssueResult
			if o.offline {
				res, err = svc.MakeFatJWT(ctx, models.VerticalLoyalty, class, object)
			} else {
				if _, err = svc.RegisterClass(ctx, models.VerticalLoyalty, class); err != nil && !errors.Is(err, service.ErrConflict) {
					return err
				}
				if _, err = svc.RegisterObject(ctx, models.VerticalLoyalty, object); err != nil {
					return err
				}
				res, err = svc.MakeSkinnyJWT(ctx, models.VerticalLoyalty, objectID)
			}
			if err != nil {
				return err
			}
			printWarnings(cmd.ErrOrStderr(), res.Warnings)
			return printResult(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().String(accountIDFlagName, "", "Loyalty account number, also used as the object identifier.")
	cmd.Flags().String(accountNameFlagName, "Demo Member", "Card holder name.")
	cmd.Flags().String(programFlagName, "Demo Rewards", "Loyalty program name.")
	cmd.Flags().StringSlice(linkFlagName, nil, "Link shown on the card back, repeatable.")
	return cmd
}
