package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/vbncursed/vkr/wallet-service/internal/crypto"
	"github.com/vbncursed/vkr/wallet-service/internal/models"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fakeCatalog struct {
	mu      sync.Mutex
	records map[string]models.Record
	getErr  error
	calls   []string
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{records: map[string]models.Record{}}
}

func catalogKey(v models.Vertical, k models.Kind, id string) string {
	return v.Resource(k) + "/" + id
}

func (f *fakeCatalog) Get(_ context.Context, v models.Vertical, k models.Kind, id string) (models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "GET "+catalogKey(v, k, id))
	if f.getErr != nil {
		return models.Record{}, f.getErr
	}
	r, ok := f.records[catalogKey(v, k, id)]
	if !ok {
		return models.Record{}, ErrNotFound
	}
	return r, nil
}

func (f *fakeCatalog) Insert(_ context.Context, r models.Record) (models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := catalogKey(r.Vertical, r.Kind, r.ID)
	f.calls = append(f.calls, "POST "+key)
	if _, ok := f.records[key]; ok {
		return models.Record{}, ErrConflict
	}
	f.records[key] = r
	return r, nil
}

func (f *fakeCatalog) Update(_ context.Context, r models.Record) (models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := catalogKey(r.Vertical, r.Kind, r.ID)
	f.calls = append(f.calls, "PUT "+key)
	if _, ok := f.records[key]; !ok {
		return models.Record{}, ErrNotFound
	}
	f.records[key] = r
	return r, nil
}

type fakeJournal struct {
	recs map[string]IssuanceRecord
	err  error
}

func (j *fakeJournal) RecordIssuance(_ context.Context, rec IssuanceRecord) error {
	if j.err != nil {
		return j.err
	}
	if j.recs == nil {
		j.recs = map[string]IssuanceRecord{}
	}
	j.recs[rec.ID] = rec
	return nil
}

func (j *fakeJournal) GetIssuance(_ context.Context, id string) (IssuanceRecord, error) {
	rec, ok := j.recs[id]
	if !ok {
		return IssuanceRecord{}, ErrIssuanceNotFound
	}
	return rec, nil
}

type failingSigner struct{ err error }

func (failingSigner) Issuer() string                           { return "iss" }
func (s failingSigner) SignJWT(models.Claims) (string, error) { return "", s.err }

var (
	keyOnce sync.Once
	key     *rsa.PrivateKey
)

func testSigner(t *testing.T) JWTSigner {
	t.Helper()
	keyOnce.Do(func() {
		k, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(err)
		}
		key = k
	})
	id, err := crypto.NewIdentity("wallet@demo.iam.gserviceaccount.com", key)
	require.NoError(t, err)
	return JWTSigner{Identity: id}
}

var issuedAt = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, cat Catalog, journal IssuanceJournal, signer Signer) (*Service, *logtest.Hook) {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	svc := New(cat, journal, fixedClock{issuedAt}, signer, Settings{
		Origins: []string{"http://localhost:8080"},
		Logger:  logger,
	})
	return svc, hook
}

func decodeClaims(t *testing.T, token string) map[string]any {
	t.Helper()
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func payloadOf(t *testing.T, token string) map[string]any {
	t.Helper()
	p, ok := decodeClaims(t, token)["payload"].(map[string]any)
	require.True(t, ok)
	return p
}

func loyaltyClass(id string) models.Record {
	return models.Record{ID: id, Attrs: map[string]any{"programName": "Coffee Club", "issuerName": "Cafe"}}
}

func loyaltyObject(id, classID string) models.Record {
	return models.Record{ID: id, ClassID: classID, Attrs: map[string]any{"state": "active", "accountId": "42"}}
}

func hasWarning(warnings []string, substr string) bool {
	for _, w := range warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

func TestMakeFatJWT_EmbedsClassAndObject(t *testing.T) {
	cat := newFakeCatalog()
	journal := &fakeJournal{}
	svc, _ := newTestService(t, cat, journal, testSigner(t))

	res, err := svc.MakeFatJWT(context.Background(), models.VerticalLoyalty,
		loyaltyClass("issuer.classA"), loyaltyObject("issuer.obj1", "issuer.classA"))
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	require.Empty(t, res.Warnings)
	require.Equal(t, models.ModeFat, res.Mode)
	require.Equal(t, SaveURL(res.Token), res.SaveURL)

	claims := decodeClaims(t, res.Token)
	require.Equal(t, "wallet@demo.iam.gserviceaccount.com", claims["iss"])
	require.Equal(t, "google", claims["aud"])
	require.Equal(t, "savetoandroidpay", claims["typ"])
	require.EqualValues(t, issuedAt.Unix(), claims["iat"])
	require.Equal(t, []any{"http://localhost:8080"}, claims["origins"])

	payload := payloadOf(t, res.Token)
	require.Len(t, payload, 2)
	classes := payload["loyaltyClasses"].([]any)
	objects := payload["loyaltyObjects"].([]any)
	require.Equal(t, "issuer.classA", classes[0].(map[string]any)["id"])
	require.Equal(t, "Coffee Club", classes[0].(map[string]any)["programName"])
	require.Equal(t, "issuer.obj1", objects[0].(map[string]any)["id"])

	require.Equal(t, []string{"GET loyaltyClass/issuer.classA", "GET loyaltyObject/issuer.obj1"}, cat.calls)

	rec, err := svc.GetIssuance(context.Background(), res.ID)
	require.NoError(t, err)
	require.Equal(t, res.Token, rec.Token)
	require.Equal(t, "issuer.classA", rec.ClassID)
	require.Equal(t, "issuer.obj1", rec.ObjectID)
}

func TestMakeFatJWT_ClassMismatchWarnsButSigns(t *testing.T) {
	svc, hook := newTestService(t, newFakeCatalog(), nil, testSigner(t))

	res, err := svc.MakeFatJWT(context.Background(), models.VerticalLoyalty,
		loyaltyClass("issuer.classA"), loyaltyObject("issuer.obj1", "issuer.classB"))
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	require.True(t, hasWarning(res.Warnings, "references class issuer.classB"), res.Warnings)

	payload := payloadOf(t, res.Token)
	require.Contains(t, payload, "loyaltyClasses")
	require.Contains(t, payload, "loyaltyObjects")

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && strings.Contains(e.Message, "issuer.classB") {
			warned = true
		}
	}
	require.True(t, warned)
}

func TestMakeFatJWT_LogsExistingAndRemoteBinding(t *testing.T) {
	cat := newFakeCatalog()
	cat.records["eventTicketClass/issuer.classA"] = models.Record{ID: "issuer.classA"}
	cat.records["eventTicketObject/issuer.obj1"] = models.Record{ID: "issuer.obj1", ClassID: "issuer.old"}
	svc, hook := newTestService(t, cat, nil, testSigner(t))

	res, err := svc.MakeFatJWT(context.Background(), models.VerticalEventTicket,
		models.Record{ID: "issuer.classA"}, models.Record{ID: "issuer.obj1", ClassID: "issuer.classA"})
	require.NoError(t, err)
	require.True(t, hasWarning(res.Warnings, "bound to class issuer.old"), res.Warnings)

	var msgs []string
	for _, e := range hook.AllEntries() {
		msgs = append(msgs, e.Message)
	}
	require.Contains(t, msgs, "class issuer.classA already exists")
	require.Contains(t, msgs, "object issuer.obj1 already exists")
	require.Contains(t, payloadOf(t, res.Token), "eventTicketClasses")
}

func TestMakeFatJWT_RemoteCheckFailureIsNotFatal(t *testing.T) {
	cat := newFakeCatalog()
	cat.getErr = &RemoteError{StatusCode: 503, Message: "backend unavailable"}
	svc, _ := newTestService(t, cat, nil, testSigner(t))

	res, err := svc.MakeFatJWT(context.Background(), models.VerticalGiftCard,
		models.Record{ID: "issuer.gc"}, models.Record{ID: "issuer.gc1", ClassID: "issuer.gc"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	require.True(t, hasWarning(res.Warnings, "class existence check skipped"))
	require.True(t, hasWarning(res.Warnings, "object existence check skipped"))
	require.Contains(t, payloadOf(t, res.Token), "giftCardObjects")
}

func TestMakeFatJWT_WithoutCatalog(t *testing.T) {
	svc, _ := newTestService(t, nil, nil, testSigner(t))
	res, err := svc.MakeFatJWT(context.Background(), models.VerticalOffer,
		models.Record{ID: "issuer.offer"}, models.Record{ID: "issuer.offer1", ClassID: "issuer.offer"})
	require.NoError(t, err)
	require.Empty(t, res.Warnings)
}

func TestMakeObjectJWT_NoRemoteCalls(t *testing.T) {
	cat := newFakeCatalog()
	svc, _ := newTestService(t, cat, nil, testSigner(t))

	res, err := svc.MakeObjectJWT(context.Background(), models.VerticalFlight,
		models.Record{ID: "issuer.bp1", ClassID: "issuer.flight", Attrs: map[string]any{"passengerName": "A B"}})
	require.NoError(t, err)
	require.Empty(t, cat.calls)

	payload := payloadOf(t, res.Token)
	require.Len(t, payload, 1)
	obj := payload["flightObjects"].([]any)[0].(map[string]any)
	require.Equal(t, "issuer.bp1", obj["id"])
	require.Equal(t, "issuer.flight", obj["classId"])
	require.Equal(t, "A B", obj["passengerName"])
}

func TestMakeSkinnyJWT_OnlyObjectID(t *testing.T) {
	cat := newFakeCatalog()
	svc, _ := newTestService(t, cat, nil, testSigner(t))

	res, err := svc.MakeSkinnyJWT(context.Background(), models.VerticalLoyalty, "issuer.obj1")
	require.NoError(t, err)
	require.Empty(t, cat.calls)
	require.Equal(t, models.ModeSkinny, res.Mode)

	payload := payloadOf(t, res.Token)
	require.Equal(t, map[string]any{
		"loyaltyObjects": []any{map[string]any{"id": "issuer.obj1"}},
	}, payload)
}

func TestIssue_ValidationErrors(t *testing.T) {
	svc, _ := newTestService(t, nil, nil, testSigner(t))
	ctx := context.Background()

	_, err := svc.MakeSkinnyJWT(ctx, models.Vertical("boat"), "issuer.obj1")
	require.ErrorIs(t, err, ErrUnknownVertical)
	require.Equal(t, StageValidate, StageOf(err))

	_, err = svc.MakeSkinnyJWT(ctx, models.VerticalTransit, "")
	require.ErrorIs(t, err, ErrInvalidRecord)

	_, err = svc.MakeObjectJWT(ctx, models.VerticalTransit, models.Record{ID: "issuer.t1"})
	require.ErrorIs(t, err, ErrInvalidRecord)

	_, err = svc.MakeFatJWT(ctx, models.VerticalTransit, models.Record{}, models.Record{ID: "issuer.t1", ClassID: "issuer.t"})
	require.ErrorIs(t, err, ErrInvalidRecord)
	require.Equal(t, StageValidate, StageOf(err))
}

func TestIssue_SigningAndEncodingFailuresAreTyped(t *testing.T) {
	ctx := context.Background()

	svc, _ := newTestService(t, nil, nil, failingSigner{err: ErrSigning})
	res, err := svc.MakeSkinnyJWT(ctx, models.VerticalOffer, "issuer.o1")
	require.ErrorIs(t, err, ErrSigning)
	require.Equal(t, StageSign, StageOf(err))
	require.Empty(t, res.Token)

	svc, _ = newTestService(t, nil, nil, failingSigner{err: ErrEncoding})
	_, err = svc.MakeSkinnyJWT(ctx, models.VerticalOffer, "issuer.o1")
	require.ErrorIs(t, err, ErrEncoding)
	require.Equal(t, StageEncode, StageOf(err))

	svc, _ = newTestService(t, nil, nil, JWTSigner{Identity: crypto.Identity{Email: "no-key"}})
	_, err = svc.MakeSkinnyJWT(ctx, models.VerticalOffer, "issuer.o1")
	require.ErrorIs(t, err, ErrSigning)
}

func TestIssue_JournalFailure(t *testing.T) {
	boom := errors.New("db down")
	svc, _ := newTestService(t, nil, &fakeJournal{err: boom}, testSigner(t))
	res, err := svc.MakeSkinnyJWT(context.Background(), models.VerticalOffer, "issuer.o1")
	require.ErrorIs(t, err, boom)
	require.Equal(t, StageJournal, StageOf(err))
	require.Empty(t, res.Token)
}

func TestIssue_DeterministicForFixedClock(t *testing.T) {
	svc, _ := newTestService(t, nil, nil, testSigner(t))
	a, err := svc.MakeSkinnyJWT(context.Background(), models.VerticalTransit, "issuer.t1")
	require.NoError(t, err)
	b, err := svc.MakeSkinnyJWT(context.Background(), models.VerticalTransit, "issuer.t1")
	require.NoError(t, err)
	require.Equal(t, a.Token, b.Token)
	require.NotEqual(t, a.ID, b.ID)
}

func TestIssue_ConcurrentCalls(t *testing.T) {
	cat := newFakeCatalog()
	svc, _ := newTestService(t, cat, nil, testSigner(t))

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.MakeFatJWT(context.Background(), models.VerticalLoyalty,
				loyaltyClass("issuer.classA"), loyaltyObject("issuer.obj1", "issuer.classA"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	require.Len(t, cat.calls, 32)
}

func TestRegisterAndLookup(t *testing.T) {
	cat := newFakeCatalog()
	svc, _ := newTestService(t, cat, nil, testSigner(t))
	ctx := context.Background()

	_, err := svc.RegisterClass(ctx, models.VerticalLoyalty, loyaltyClass("issuer.classA"))
	require.NoError(t, err)
	_, err = svc.RegisterClass(ctx, models.VerticalLoyalty, loyaltyClass("issuer.classA"))
	require.ErrorIs(t, err, ErrConflict)
	require.Equal(t, StageRemote, StageOf(err))

	updated := loyaltyClass("issuer.classA")
	updated.Attrs["programName"] = "Tea Club"
	_, err = svc.UpdateClass(ctx, models.VerticalLoyalty, updated)
	require.NoError(t, err)

	_, err = svc.RegisterObject(ctx, models.VerticalLoyalty, loyaltyObject("issuer.obj1", "issuer.classA"))
	require.NoError(t, err)

	got, err := svc.Lookup(ctx, models.VerticalLoyalty, models.KindClass, "issuer.classA")
	require.NoError(t, err)
	require.Equal(t, "Tea Club", got.Attrs["programName"])

	_, err = svc.Lookup(ctx, models.VerticalLoyalty, models.KindObject, "issuer.missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRegister_WithoutCatalog(t *testing.T) {
	svc, _ := newTestService(t, nil, nil, testSigner(t))
	_, err := svc.RegisterObject(context.Background(), models.VerticalLoyalty, loyaltyObject("issuer.obj1", "issuer.classA"))
	require.ErrorIs(t, err, ErrNoCatalog)

	_, err = svc.GetIssuance(context.Background(), "x")
	require.ErrorIs(t, err, ErrIssuanceNotFound)
}

// tickingClock сдвигается на секунду при каждом чтении
type tickingClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *tickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.t
	c.t = c.t.Add(time.Second)
	return now
}

func TestIssue_IssuedAtMatchesTokenIat(t *testing.T) {
	journal := &fakeJournal{}
	logger, _ := logtest.NewNullLogger()
	clock := &tickingClock{t: issuedAt}
	svc := New(nil, journal, clock, testSigner(t), Settings{Logger: logger})

	res, err := svc.MakeSkinnyJWT(context.Background(), models.VerticalOffer, "338.coupon")
	require.NoError(t, err)

	claims := decodeClaims(t, res.Token)
	require.EqualValues(t, res.IssuedAt.Unix(), claims["iat"])
	require.True(t, issuedAt.Equal(res.IssuedAt))
	require.True(t, res.IssuedAt.Equal(journal.recs[res.ID].IssuedAt))
}

func TestAddRecords_UnknownSlotIsEncodeError(t *testing.T) {
	claims := models.NewClaims("iss", issuedAt, nil)
	err := addRecords(&claims, models.Record{Vertical: models.Vertical("boat"), Kind: models.KindObject, ID: "338.x"})
	require.ErrorIs(t, err, models.ErrUnknownVertical)
	require.Equal(t, StageEncode, StageOf(err))
	require.Empty(t, claims.Payload.Slots())
}
