package passcmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vbncursed/vkr/wallet-service/internal/models"
	"github.com/vbncursed/vkr/wallet-service/internal/service"
)

const (
	kindFlagName   = "kind"
	fileFlagName   = "file"
	updateFlagName = "update"
)

func createRegisterCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Insert or update a class or object in the Wallet Objects API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if o.offline {
				return errors.New("register needs the Wallet Objects API, drop --offline")
			}
			v, err := verticalFlag(cmd)
			if err != nil {
				return err
			}
			kindStr, _ := cmd.Flags().GetString(kindFlagName)
			k, err := models.ParseKind(kindStr)
			if err != nil {
				return fmt.Errorf("--%s: %w", kindFlagName, err)
			}
			file, _ := cmd.Flags().GetString(fileFlagName)
			update, _ := cmd.Flags().GetBool(updateFlagName)
			rec, err := readRecord(file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			svc, err := o.newService(cmd.Context(), true)
			if err != nil {
				return err
			}
			var out models.Record
			switch {
			case k == models.KindClass && update:
				out, err = svc.UpdateClass(cmd.Context(), v, rec)
			case k == models.KindClass:
				out, err = svc.RegisterClass(cmd.Context(), v, rec)
			case update:
				return fmt.Errorf("update object: %w", service.ErrUnsupportedKind)
			default:
				out, err = svc.RegisterObject(cmd.Context(), v, rec)
			}
			if err != nil {
				return err
			}
			return printRecord(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().String(verticalFlagName, "", verticalFlagUsage)
	cmd.Flags().String(kindFlagName, "class", "Resource kind: class or object.")
	cmd.Flags().String(fileFlagName, "", "Resource JSON file, - for stdin.")
	cmd.Flags().Bool(updateFlagName, false, "Replace an existing class instead of inserting.")
	return cmd
}
