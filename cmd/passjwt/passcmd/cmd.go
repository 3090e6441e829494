// Package passcmd wires the passjwt command tree.
package passcmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vbncursed/vkr/wallet-service/internal/catalog"
	"github.com/vbncursed/vkr/wallet-service/internal/config"
	"github.com/vbncursed/vkr/wallet-service/internal/crypto"
	"github.com/vbncursed/vkr/wallet-service/internal/models"
	"github.com/vbncursed/vkr/wallet-service/internal/service"
)

const (
	keyFlagName  = "key"
	keyFlagUsage = "Service account JSON key file." +
		" Alternatively, this can be set with the following environment variable: SERVICE_ACCOUNT_FILE"

	emailFlagName  = "email"
	emailFlagUsage = "Overrides client_email of the key file." +
		" Alternatively, this can be set with the following environment variable: SERVICE_ACCOUNT_EMAIL"

	originsFlagName  = "origins"
	originsFlagUsage = "Web origins allowed to show the save button." +
		" Alternatively, this can be set with the following environment variable: ORIGINS"

	issuerIDFlagName  = "issuer-id"
	issuerIDFlagUsage = "Issuer id used to build resource ids." +
		" Alternatively, this can be set with the following environment variable: ISSUER_ID"

	catalogURLFlagName  = "catalog-url"
	catalogURLFlagUsage = "Wallet Objects API base URL." +
		" Alternatively, this can be set with the following environment variable: CATALOG_BASE_URL"

	conflictFlagName  = "conflict-policy"
	conflictFlagUsage = "What to do when an object already exists: fetch or fail." +
		" Alternatively, this can be set with the following environment variable: CONFLICT_POLICY"

	offlineFlagName  = "offline"
	offlineFlagUsage = "Do not call the Wallet Objects API."

	verticalFlagName  = "vertical"
	verticalFlagUsage = "Pass vertical: offer, loyalty, eventTicket, flight, giftCard or transit."

	defaultTimeout = 10 * time.Second

	stdinPath = "-"
)

// options — общие параметры всех подкоманд
type options struct {
	cfg        config.Config
	log        logrus.FieldLogger
	keyFile    string
	email      string
	origins    []string
	issuerID   string
	catalogURL string
	conflict   string
	offline    bool
}

// Cmd строит корневую команду passjwt; значения по умолчанию берутся из cfg.
func Cmd(cfg config.Config, log logrus.FieldLogger) *cobra.Command {
	if log == nil {
		log = logrus.StandardLogger()
	}
	o := &options{cfg: cfg, log: log}

	root := &cobra.Command{
		Use:           "passjwt",
		Short:         "Issue Google Wallet save JWTs",
		Long:          "Issue signed Google Wallet save JWTs and manage pass classes and objects",
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&o.keyFile, keyFlagName, cfg.ServiceAccountFile, keyFlagUsage)
	flags.StringVar(&o.email, emailFlagName, cfg.ServiceAccountEmail, emailFlagUsage)
	flags.StringSliceVar(&o.origins, originsFlagName, cfg.Origins, originsFlagUsage)
	flags.StringVar(&o.issuerID, issuerIDFlagName, cfg.IssuerID, issuerIDFlagUsage)
	flags.StringVar(&o.catalogURL, catalogURLFlagName, cfg.CatalogBaseURL, catalogURLFlagUsage)
	flags.StringVar(&o.conflict, conflictFlagName, cfg.ConflictPolicy, conflictFlagUsage)
	flags.BoolVar(&o.offline, offlineFlagName, false, offlineFlagUsage)

	root.AddCommand(
		createFatCmd(o),
		createObjectCmd(o),
		createSkinnyCmd(o),
		createRegisterCmd(o),
		createDemoCmd(o),
	)
	return root
}

// newService собирает сервис выпуска. Каталог подключается, только если
// он нужен команде и не указан --offline.
func (o *options) newService(ctx context.Context, needCatalog bool) (*service.Service, error) {
	sa, err := crypto.LoadServiceAccount(o.keyFile, o.email)
	if err != nil {
		return nil, err
	}

	var cat service.Catalog
	if needCatalog && !o.offline {
		policy, err := catalog.ParseConflictPolicy(o.conflict)
		if err != nil {
			return nil, err
		}
		hc := sa.HTTPClient(ctx)
		hc.Timeout = o.cfg.CatalogTimeout
		if hc.Timeout <= 0 {
			hc.Timeout = defaultTimeout
		}
		cat = catalog.New(o.catalogURL,
			catalog.WithHTTPClient(hc),
			catalog.WithUserAgent(o.cfg.ApplicationName),
			catalog.WithConflictPolicy(policy),
			catalog.WithLogger(o.log),
		)
	}

	return service.New(cat, nil, service.RealClock{}, service.JWTSigner{Identity: sa.Identity}, service.Settings{
		Origins: o.origins,
		Logger:  o.log,
	}), nil
}

func printResult(w io.Writer, res service.IssueResult) error {
	if _, err := fmt.Fprintln(w, res.Token); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, res.SaveURL)
	return err
}

func printWarnings(w io.Writer, warnings []string) {
	for _, msg := range warnings {
		fmt.Fprintf(w, "warning: %s\n", msg)
	}
}

func printRecord(w io.Writer, r models.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// readRecord читает JSON ресурса из файла или stdin ("-")
func readRecord(path string, stdin io.Reader) (models.Record, error) {
	if path == "" {
		return models.Record{}, errors.New("record file is required")
	}
	var (
		data []byte
		err  error
	)
	if path == stdinPath {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return models.Record{}, fmt.Errorf("read %s: %w", path, err)
	}
	var r models.Record
	if err := json.Unmarshal(data, &r); err != nil {
		return models.Record{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return r, nil
}

func verticalFlag(cmd *cobra.Command) (models.Vertical, error) {
	s, err := cmd.Flags().GetString(verticalFlagName)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", fmt.Errorf("--%s is required", verticalFlagName)
	}
	return models.ParseVertical(s)
}
