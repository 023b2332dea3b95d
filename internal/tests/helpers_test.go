// internal/tests/helpers_test.go
package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/config"
	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/models"
	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/router"
	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/services"
	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/utils"
)

const testSecret = "test-secret"

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
	Errors     json.RawMessage `json:"errors"`
	Meta       json.RawMessage `json:"meta"`
}

type testEnv struct {
	cfg          *config.Config
	pdfs         *MemoryStore[models.PDF]
	reservations *MemoryStore[models.Reservation]
	logs         *MemoryStore[models.ReferralProfitLog]
	assets       *FakeAssetStore
	tx           *Transactor
	router       *gin.Engine
	done         chan struct{}
}

func testConfig(secret string) *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey: secret,
			AdminRole: "admin",
		},
		Upload: config.UploadConfig{
			MaxSizeMB: 1,
		},
		Referral: config.ReferralConfig{
			TeamAPercent: 10,
			TeamBPercent: 5,
			TeamCPercent: 2.5,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

func newTestEnv(cfg *config.Config) *testEnv {
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		cfg:          cfg,
		pdfs:         NewPDFStore(),
		reservations: NewReservationStore(),
		logs:         NewReferralLogStore(),
		assets:       NewFakeAssetStore(),
		tx:           &Transactor{},
		done:         make(chan struct{}),
	}

	svc := &router.Services{
		PDF:          services.NewPDFService(env.pdfs, env.assets, cfg.Upload.MaxSizeMB),
		Reservations: services.NewReservationService(env.reservations, env.tx),
		Referrals:    services.NewReferralService(env.reservations, env.logs, env.tx, cfg.Referral),
	}
	env.router = router.New(svc, cfg, env.done)
	return env
}

func (e *testEnv) close() {
	close(e.done)
}

func (e *testEnv) do(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w, body
}

func jsonRequest(t *testing.T, method, path string, payload interface{}) *http.Request {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// multipartRequest attaches content under field with the given declared type.
// An empty field sends a form with no file part.
func multipartRequest(t *testing.T, method, path, field, filename, contentType string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if field != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, filename))
		header.Set("Content-Type", contentType)

		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, writer.WriteField("note", "no file"))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func bearer(t *testing.T, req *http.Request, userID, role string) *http.Request {
	t.Helper()

	token, err := utils.GenerateJWT([]byte(testSecret), userID, role, time.Hour)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func decode(t *testing.T, raw json.RawMessage, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, out), string(raw))
}

var samplePDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")
