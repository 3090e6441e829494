package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vbncursed/vkr/wallet-service/internal/models"
	"github.com/vbncursed/vkr/wallet-service/internal/validate"
)

const saveURLPrefix = "https://pay.google.com/gp/v/save/"

// SaveURL — ссылка "Save to Google Pay" для токена
func SaveURL(token string) string {
	return saveURLPrefix + token
}

// Settings — неизменяемые параметры выпуска
type Settings struct {
	Origins []string
	Logger  logrus.FieldLogger
}

// Service реализует три режима выпуска токенов и предрегистрацию в каталоге.
// catalog и journal могут быть nil: тогда удалённые проверки и журнал пропускаются.
type Service struct {
	catalog Catalog
	journal IssuanceJournal
	clock   Clock
	signer  Signer
	origins []string
	log     logrus.FieldLogger
}

func New(catalog Catalog, journal IssuanceJournal, clock Clock, signer Signer, st Settings) *Service {
	log := st.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		catalog: catalog,
		journal: journal,
		clock:   clock,
		signer:  signer,
		origins: append([]string(nil), st.Origins...),
		log:     log,
	}
}

// MakeFatJWT — класс и объект целиком в токене. Чтения из каталога носят
// диагностический характер: их ошибки превращаются в предупреждения.
func (s *Service) MakeFatJWT(ctx context.Context, v models.Vertical, class, object models.Record) (IssueResult, error) {
	if !v.Valid() {
		return IssueResult{}, stageErr(StageValidate, ErrUnknownVertical)
	}
	class = class.With(v, models.KindClass)
	object = object.With(v, models.KindObject)
	if err := validate.Class(class); err != nil {
		return IssueResult{}, stageErr(StageValidate, err)
	}
	if err := validate.Object(object, true); err != nil {
		return IssueResult{}, stageErr(StageValidate, err)
	}

	log := s.log.WithFields(logrus.Fields{
		"mode":      models.ModeFat,
		"vertical":  v,
		"class_id":  class.ID,
		"object_id": object.ID,
	})
	warnings := s.checkExisting(ctx, log, class, object)
	if object.ClassID != class.ID {
		msg := fmt.Sprintf("object %s references class %s, but the token carries class %s", object.ID, object.ClassID, class.ID)
		log.Warn(msg)
		warnings = append(warnings, msg)
	}

	claims := s.newClaims()
	if err := addRecords(&claims, class, object); err != nil {
		return IssueResult{}, err
	}
	return s.issue(ctx, log, models.ModeFat, v, claims, class.ID, object.ID, warnings)
}

// MakeObjectJWT — только объект; класс должен быть заведён заранее
func (s *Service) MakeObjectJWT(ctx context.Context, v models.Vertical, object models.Record) (IssueResult, error) {
	if !v.Valid() {
		return IssueResult{}, stageErr(StageValidate, ErrUnknownVertical)
	}
	object = object.With(v, models.KindObject)
	if err := validate.Object(object, true); err != nil {
		return IssueResult{}, stageErr(StageValidate, err)
	}
	log := s.log.WithFields(logrus.Fields{"mode": models.ModeObject, "vertical": v, "object_id": object.ID})

	claims := s.newClaims()
	if err := addRecords(&claims, object); err != nil {
		return IssueResult{}, err
	}
	return s.issue(ctx, log, models.ModeObject, v, claims, object.ClassID, object.ID, nil)
}

// MakeSkinnyJWT — в токене только id заранее заведённого объекта
func (s *Service) MakeSkinnyJWT(ctx context.Context, v models.Vertical, objectID string) (IssueResult, error) {
	if !v.Valid() {
		return IssueResult{}, stageErr(StageValidate, ErrUnknownVertical)
	}
	if err := validate.ObjectID(objectID); err != nil {
		return IssueResult{}, stageErr(StageValidate, err)
	}
	log := s.log.WithFields(logrus.Fields{"mode": models.ModeSkinny, "vertical": v, "object_id": objectID})

	claims := s.newClaims()
	if err := addRecords(&claims, models.ObjectRef(v, objectID)); err != nil {
		return IssueResult{}, err
	}
	return s.issue(ctx, log, models.ModeSkinny, v, claims, "", objectID, nil)
}

// newClaims читает часы один раз: iat токена и IssuedAt записи совпадают
func (s *Service) newClaims() models.Claims {
	return models.NewClaims(s.signer.Issuer(), s.clock.Now(), s.origins)
}

func addRecords(claims *models.Claims, records ...models.Record) error {
	for _, r := range records {
		if err := claims.Payload.Add(r); err != nil {
			return stageErr(StageEncode, err)
		}
	}
	return nil
}

func (s *Service) checkExisting(ctx context.Context, log logrus.FieldLogger, class, object models.Record) []string {
	if s.catalog == nil {
		log.Debug("no catalog configured, existence checks skipped")
		return nil
	}
	var warnings []string

	if _, err := s.catalog.Get(ctx, class.Vertical, models.KindClass, class.ID); err == nil {
		log.Infof("class %s already exists", class.ID)
	} else if !errors.Is(err, ErrNotFound) {
		log.WithError(err).Warn("class existence check failed")
		warnings = append(warnings, fmt.Sprintf("class existence check skipped: %v", err))
	}

	remote, err := s.catalog.Get(ctx, object.Vertical, models.KindObject, object.ID)
	switch {
	case err == nil:
		log.Infof("object %s already exists", object.ID)
		if remote.ClassID != "" && remote.ClassID != object.ClassID {
			msg := fmt.Sprintf("saved object %s is bound to class %s, not %s; it will not have the class properties you expect",
				object.ID, remote.ClassID, object.ClassID)
			log.Warn(msg)
			warnings = append(warnings, msg)
		}
	case errors.Is(err, ErrNotFound):
	default:
		log.WithError(err).Warn("object existence check failed")
		warnings = append(warnings, fmt.Sprintf("object existence check skipped: %v", err))
	}
	return warnings
}

func (s *Service) issue(ctx context.Context, log logrus.FieldLogger, mode models.Mode, v models.Vertical,
	claims models.Claims, classID, objectID string, warnings []string) (IssueResult, error) {
	token, err := s.signer.SignJWT(claims)
	if err != nil {
		stage := StageSign
		if errors.Is(err, ErrEncoding) {
			stage = StageEncode
		}
		log.WithError(err).Error("token signing failed")
		return IssueResult{}, stageErr(stage, err)
	}
	if token == "" {
		return IssueResult{}, stageErr(StageSign, ErrSigning)
	}

	rec := IssuanceRecord{
		ID:       uuid.New().String(),
		Mode:     mode,
		Vertical: v,
		ClassID:  classID,
		ObjectID: objectID,
		Token:    token,
		Warnings: warnings,
		IssuedAt: time.Unix(claims.Iat, 0).UTC(),
	}
	if s.journal != nil {
		if err := s.journal.RecordIssuance(ctx, rec); err != nil {
			log.WithError(err).Error("issuance journal write failed")
			return IssueResult{}, stageErr(StageJournal, err)
		}
	}
	log.WithField("issuance_id", rec.ID).Infof("issued %s token (%d bytes)", mode, len(token))
	return IssueResult{
		ID:       rec.ID,
		Mode:     mode,
		Vertical: v,
		Token:    token,
		SaveURL:  SaveURL(token),
		Warnings: warnings,
		IssuedAt: rec.IssuedAt,
	}, nil
}

// RegisterClass — insert класса в каталог; конфликт возвращается как ErrConflict
func (s *Service) RegisterClass(ctx context.Context, v models.Vertical, class models.Record) (models.Record, error) {
	if !v.Valid() {
		return models.Record{}, stageErr(StageValidate, ErrUnknownVertical)
	}
	class = class.With(v, models.KindClass)
	if err := validate.Class(class); err != nil {
		return models.Record{}, stageErr(StageValidate, err)
	}
	if s.catalog == nil {
		return models.Record{}, stageErr(StageRemote, ErrNoCatalog)
	}
	out, err := s.catalog.Insert(ctx, class)
	if err != nil {
		return models.Record{}, stageErr(StageRemote, err)
	}
	s.log.WithFields(logrus.Fields{"vertical": v, "class_id": out.ID}).Info("class registered")
	return out, nil
}

// UpdateClass — полная замена класса в каталоге
func (s *Service) UpdateClass(ctx context.Context, v models.Vertical, class models.Record) (models.Record, error) {
	if !v.Valid() {
		return models.Record{}, stageErr(StageValidate, ErrUnknownVertical)
	}
	class = class.With(v, models.KindClass)
	if err := validate.Class(class); err != nil {
		return models.Record{}, stageErr(StageValidate, err)
	}
	if s.catalog == nil {
		return models.Record{}, stageErr(StageRemote, ErrNoCatalog)
	}
	out, err := s.catalog.Update(ctx, class)
	if err != nil {
		return models.Record{}, stageErr(StageRemote, err)
	}
	s.log.WithFields(logrus.Fields{"vertical": v, "class_id": out.ID}).Info("class updated")
	return out, nil
}

// RegisterObject — insert объекта; поведение при конфликте задаёт политика каталога
func (s *Service) RegisterObject(ctx context.Context, v models.Vertical, object models.Record) (models.Record, error) {
	if !v.Valid() {
		return models.Record{}, stageErr(StageValidate, ErrUnknownVertical)
	}
	object = object.With(v, models.KindObject)
	if err := validate.Object(object, true); err != nil {
		return models.Record{}, stageErr(StageValidate, err)
	}
	if s.catalog == nil {
		return models.Record{}, stageErr(StageRemote, ErrNoCatalog)
	}
	out, err := s.catalog.Insert(ctx, object)
	if err != nil {
		return models.Record{}, stageErr(StageRemote, err)
	}
	s.log.WithFields(logrus.Fields{"vertical": v, "object_id": out.ID}).Info("object registered")
	return out, nil
}

// Lookup — чтение класса или объекта из каталога
func (s *Service) Lookup(ctx context.Context, v models.Vertical, k models.Kind, id string) (models.Record, error) {
	if !v.Valid() {
		return models.Record{}, stageErr(StageValidate, ErrUnknownVertical)
	}
	if s.catalog == nil {
		return models.Record{}, stageErr(StageRemote, ErrNoCatalog)
	}
	out, err := s.catalog.Get(ctx, v, k, id)
	if err != nil {
		return models.Record{}, stageErr(StageRemote, err)
	}
	return out, nil
}

// GetIssuance — запись журнала по id
func (s *Service) GetIssuance(ctx context.Context, id string) (IssuanceRecord, error) {
	if s.journal == nil {
		return IssuanceRecord{}, ErrIssuanceNotFound
	}
	return s.journal.GetIssuance(ctx, id)
}
