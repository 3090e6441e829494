package passcmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	classFlagName  = "class"
	objectFlagName = "object"
	objectIDFlag   = "object-id"
)

func createFatCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fat",
		Short: "Issue a JWT carrying the full class and object",
		Long:  "Issue a JWT carrying the full class and object. Existing catalog entries are checked unless --offline is set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := verticalFlag(cmd)
			if err != nil {
				return err
			}
			classFile, _ := cmd.Flags().GetString(classFlagName)
			objectFile, _ := cmd.Flags().GetString(objectFlagName)
			if classFile == stdinPath && objectFile == stdinPath {
				return fmt.Errorf("--%s and --%s cannot both read stdin", classFlagName, objectFlagName)
			}
			class, err := readRecord(classFile, cmd.InOrStdin())
			if err != nil {
				return err
			}
			object, err := readRecord(objectFile, cmd.InOrStdin())
			if err != nil {
				return err
			}

			svc, err := o.newService(cmd.Context(), true)
			if err != nil {
				return err
			}
			res, err := svc.MakeFatJWT(cmd.Context(), v, class, object)
			if err != nil {
				return err
			}
			printWarnings(cmd.ErrOrStderr(), res.Warnings)
			return printResult(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().String(verticalFlagName, "", verticalFlagUsage)
	cmd.Flags().String(classFlagName, "", "Class JSON file, - for stdin.")
	cmd.Flags().String(objectFlagName, "", "Object JSON file, - for stdin.")
	return cmd
}

func createObjectCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "object",
		Short: "Issue a JWT carrying the object of a registered class",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := verticalFlag(cmd)
			if err != nil {
				return err
			}
			objectFile, _ := cmd.Flags().GetString(objectFlagName)
			object, err := readRecord(objectFile, cmd.InOrStdin())
			if err != nil {
				return err
			}

			svc, err := o.newService(cmd.Context(), false)
			if err != nil {
				return err
			}
			res, err := svc.MakeObjectJWT(cmd.Context(), v, object)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().String(verticalFlagName, "", verticalFlagUsage)
	cmd.Flags().String(objectFlagName, "", "Object JSON file, - for stdin.")
	return cmd
}

func createSkinnyCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skinny",
		Short: "Issue a JWT referencing a registered object by id",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := verticalFlag(cmd)
			if err != nil {
				return err
			}
			id, _ := cmd.Flags().GetString(objectIDFlag)

			svc, err := o.newService(cmd.Context(), false)
			if err != nil {
				return err
			}
			res, err := svc.MakeSkinnyJWT(cmd.Context(), v, id)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().String(verticalFlagName, "", verticalFlagUsage)
	cmd.Flags().String(objectIDFlag, "", "Object id in <issuerId>.<identifier> form.")
	return cmd
}
