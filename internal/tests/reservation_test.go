// internal/tests/reservation_test.go
package tests

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/models"
)

type ReservationTestSuite struct {
	suite.Suite
	env    *testEnv
	userID string
	admin  string
}

func (suite *ReservationTestSuite) SetupTest() {
	suite.env = newTestEnv(testConfig(testSecret))
	suite.userID = uuid.NewString()
	suite.admin = uuid.NewString()
}

func (suite *ReservationTestSuite) TearDownTest() {
	suite.env.close()
}

func (suite *ReservationTestSuite) asUser(req *http.Request) *http.Request {
	return bearer(suite.T(), req, suite.userID, "user")
}

func (suite *ReservationTestSuite) asAdmin(req *http.Request) *http.Request {
	return bearer(suite.T(), req, suite.admin, "admin")
}

func (suite *ReservationTestSuite) create() models.Reservation {
	req := jsonRequest(suite.T(), http.MethodPost, "/api/v1/reservations", gin.H{
		"nftId":           uuid.NewString(),
		"userId":          suite.userID,
		"reservationTime": "14:30",
		"nftName":         "Mystic Owl #7",
	})
	w, body := suite.env.do(suite.T(), suite.asUser(req))
	require.Equal(suite.T(), http.StatusCreated, w.Code, w.Body.String())

	var reservation models.Reservation
	decode(suite.T(), body.Data, &reservation)
	return reservation
}

func (suite *ReservationTestSuite) action(id uuid.UUID, verb string, payload interface{}) (*httptest.ResponseRecorder, envelope) {
	path := fmt.Sprintf("/api/v1/reservations/%s/%s", id, verb)
	return suite.env.do(suite.T(), suite.asAdmin(jsonRequest(suite.T(), http.MethodPost, path, payload)))
}

func (suite *ReservationTestSuite) sold(profit string) models.Reservation {
	reservation := suite.create()

	w, _ := suite.action(reservation.ID, "buy", gin.H{"buyAmount": "100"})
	require.Equal(suite.T(), http.StatusOK, w.Code, w.Body.String())

	w, body := suite.action(reservation.ID, "sell", gin.H{"profit": profit})
	require.Equal(suite.T(), http.StatusOK, w.Code, w.Body.String())

	decode(suite.T(), body.Data, &reservation)
	return reservation
}

func threeUplines() []gin.H {
	return []gin.H{
		{"userId": uuid.NewString(), "teamType": "A"},
		{"userId": uuid.NewString(), "teamType": "B"},
		{"userId": uuid.NewString(), "teamType": "C"},
	}
}

func (suite *ReservationTestSuite) TestCreateReservation() {
	reservation := suite.create()

	assert.NotEqual(suite.T(), uuid.Nil, reservation.ID)
	assert.Equal(suite.T(), models.ReservationStatusReserved, reservation.Status)
	assert.False(suite.T(), reservation.ReferralProfitDistributed)
	assert.Equal(suite.T(), suite.userID, reservation.UserID.String())
	assert.Nil(suite.T(), reservation.BuyAmount)
	assert.False(suite.T(), reservation.ReservationDate.IsZero())
}

func (suite *ReservationTestSuite) TestCreateReservationValidation() {
	req := jsonRequest(suite.T(), http.MethodPost, "/api/v1/reservations", gin.H{
		"nftId":  "nope",
		"userId": suite.userID,
	})
	w, body := suite.env.do(suite.T(), suite.asUser(req))

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.False(suite.T(), body.Success)
	assert.Contains(suite.T(), string(body.Errors), "nftId")
	assert.Contains(suite.T(), string(body.Errors), "reservationTime")
	assert.Zero(suite.T(), suite.env.reservations.Len())
}

func (suite *ReservationTestSuite) TestCreateReservationForAnotherUser() {
	payload := gin.H{
		"nftId":           uuid.NewString(),
		"userId":          uuid.NewString(),
		"reservationTime": "09:15",
	}

	w, body := suite.env.do(suite.T(), suite.asUser(jsonRequest(suite.T(), http.MethodPost, "/api/v1/reservations", payload)))
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
	assert.Equal(suite.T(), "Cannot create a reservation for another user", body.Message)
	assert.Zero(suite.T(), suite.env.reservations.Len())

	w, body = suite.env.do(suite.T(), suite.asAdmin(jsonRequest(suite.T(), http.MethodPost, "/api/v1/reservations", payload)))
	require.Equal(suite.T(), http.StatusCreated, w.Code, w.Body.String())

	var reservation models.Reservation
	decode(suite.T(), body.Data, &reservation)
	assert.Equal(suite.T(), payload["userId"], reservation.UserID.String())
}

func (suite *ReservationTestSuite) TestAuthentication() {
	req := jsonRequest(suite.T(), http.MethodPost, "/api/v1/reservations", gin.H{})
	w, body := suite.env.do(suite.T(), req)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
	assert.Equal(suite.T(), "null", string(body.Data))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/reservations", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w, _ = suite.env.do(suite.T(), req)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	reservation := suite.create()
	path := fmt.Sprintf("/api/v1/reservations/%s/buy", reservation.ID)
	w, body = suite.env.do(suite.T(), suite.asUser(jsonRequest(suite.T(), http.MethodPost, path, gin.H{"buyAmount": "10"})))
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
	assert.Equal(suite.T(), "Admin access required", body.Message)
}

func (suite *ReservationTestSuite) TestLifecycleMovesForwardOnly() {
	reservation := suite.create()

	w, _ := suite.action(reservation.ID, "sell", gin.H{"profit": "10"})
	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	w, body := suite.action(reservation.ID, "buy", gin.H{"buyAmount": "250.456"})
	require.Equal(suite.T(), http.StatusOK, w.Code, w.Body.String())
	decode(suite.T(), body.Data, &reservation)
	assert.Equal(suite.T(), models.ReservationStatusBought, reservation.Status)
	require.NotNil(suite.T(), reservation.BuyAmount)
	assert.Equal(suite.T(), "250.46", reservation.BuyAmount.String())
	assert.NotNil(suite.T(), reservation.BuyDate)

	w, _ = suite.action(reservation.ID, "buy", gin.H{"buyAmount": "1"})
	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	w, body = suite.action(reservation.ID, "sell", gin.H{"profit": "-12.5"})
	require.Equal(suite.T(), http.StatusOK, w.Code, w.Body.String())
	decode(suite.T(), body.Data, &reservation)
	assert.Equal(suite.T(), models.ReservationStatusSold, reservation.Status)
	assert.Equal(suite.T(), "-12.5", reservation.Profit.String())

	for _, verb := range []string{"buy", "sell"} {
		w, body = suite.action(reservation.ID, verb, gin.H{"buyAmount": "1", "profit": "1"})
		assert.Equal(suite.T(), http.StatusConflict, w.Code, verb)
		assert.False(suite.T(), body.Success)
	}
}

func (suite *ReservationTestSuite) TestBuyValidation() {
	reservation := suite.create()

	w, _ := suite.action(reservation.ID, "buy", gin.H{"buyAmount": "0"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w, _ = suite.action(uuid.New(), "buy", gin.H{"buyAmount": "5"})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *ReservationTestSuite) TestDistributeReferralProfit() {
	reservation := suite.sold("200")
	uplines := threeUplines()

	w, body := suite.action(reservation.ID, "distribute", gin.H{"uplines": uplines})
	require.Equal(suite.T(), http.StatusCreated, w.Code, w.Body.String())

	var logs []models.ReferralProfitLog
	decode(suite.T(), body.Data, &logs)
	require.Len(suite.T(), logs, 3)

	expected := map[models.TeamType]string{
		models.TeamTypeA: "20",
		models.TeamTypeB: "10",
		models.TeamTypeC: "5",
	}
	for i, entry := range logs {
		assert.Equal(suite.T(), uplines[i]["userId"], entry.UplineUser.String())
		assert.Equal(suite.T(), suite.userID, entry.DownlineUser.String())
		assert.Equal(suite.T(), reservation.ID, entry.ReservationID)
		assert.True(suite.T(), decimal.RequireFromString("200").Equal(entry.Profit))
		assert.True(suite.T(), decimal.RequireFromString(expected[entry.TeamType]).Equal(entry.Commission), entry.Commission.String())
	}

	stored, err := suite.env.reservations.FindByID(context.Background(), reservation.ID)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), stored.ReferralProfitDistributed)

	// At most once.
	w, body = suite.action(reservation.ID, "distribute", gin.H{"uplines": threeUplines()})
	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	assert.Equal(suite.T(), "Referral profit has already been distributed", body.Message)
	assert.Equal(suite.T(), 3, suite.env.logs.Len())
}

func (suite *ReservationTestSuite) TestDistributeRequiresSold() {
	reservation := suite.create()

	w, _ := suite.action(reservation.ID, "distribute", gin.H{"uplines": threeUplines()})
	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	assert.Zero(suite.T(), suite.env.logs.Len())

	w, _ = suite.action(uuid.New(), "distribute", gin.H{"uplines": threeUplines()})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *ReservationTestSuite) TestDistributeValidation() {
	reservation := suite.sold("50")

	cases := map[string]gin.H{
		"empty":            {"uplines": []gin.H{}},
		"too many":         {"uplines": append(threeUplines(), gin.H{"userId": uuid.NewString(), "teamType": "A"})},
		"duplicate":        {"uplines": []gin.H{{"userId": uuid.NewString(), "teamType": "A"}, {"userId": uuid.NewString(), "teamType": "A"}}},
		"duplicate upline": {"uplines": []gin.H{{"userId": suite.admin, "teamType": "A"}, {"userId": suite.admin, "teamType": "B"}}},
		"bad team":         {"uplines": []gin.H{{"userId": uuid.NewString(), "teamType": "D"}}},
		"owner":            {"uplines": []gin.H{{"userId": suite.userID, "teamType": "A"}}},
	}

	for name, payload := range cases {
		w, _ := suite.action(reservation.ID, "distribute", payload)
		assert.Equal(suite.T(), http.StatusBadRequest, w.Code, name)
	}
	assert.Zero(suite.T(), suite.env.logs.Len())
}

func (suite *ReservationTestSuite) TestLossPaysNoCommission() {
	reservation := suite.sold("-40")

	w, body := suite.action(reservation.ID, "distribute", gin.H{"uplines": threeUplines()[:1]})
	require.Equal(suite.T(), http.StatusCreated, w.Code, w.Body.String())

	var logs []models.ReferralProfitLog
	decode(suite.T(), body.Data, &logs)
	require.Len(suite.T(), logs, 1)
	assert.True(suite.T(), logs[0].Commission.IsZero())
	assert.True(suite.T(), decimal.NewFromInt(10).Equal(logs[0].Percentage))
}

func (suite *ReservationTestSuite) TestLogsOutliveReservation() {
	reservation := suite.sold("100")

	w, _ := suite.action(reservation.ID, "distribute", gin.H{"uplines": threeUplines()})
	require.Equal(suite.T(), http.StatusCreated, w.Code)

	path := "/api/v1/reservations/" + reservation.ID.String()
	w, body := suite.env.do(suite.T(), suite.asAdmin(httptest.NewRequest(http.MethodDelete, path, nil)))
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "null", string(body.Data))

	w, _ = suite.env.do(suite.T(), suite.asUser(httptest.NewRequest(http.MethodGet, path, nil)))
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	listPath := "/api/v1/referral-profits?reservationId=" + reservation.ID.String()
	w, body = suite.env.do(suite.T(), suite.asUser(httptest.NewRequest(http.MethodGet, listPath, nil)))
	require.Equal(suite.T(), http.StatusOK, w.Code)

	var logs []models.ReferralProfitLog
	decode(suite.T(), body.Data, &logs)
	assert.Len(suite.T(), logs, 3)
	assert.Equal(suite.T(), "3", w.Header().Get("X-Total-Count"))

	w, body = suite.env.do(suite.T(), suite.asUser(httptest.NewRequest(http.MethodGet, "/api/v1/referral-profits/"+logs[0].ID.String(), nil)))
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "Referral profit retrieved successfully", body.Message)
}

func (suite *ReservationTestSuite) TestListReservations() {
	first := suite.create()
	suite.create()
	third := suite.create()

	w, _ := suite.action(first.ID, "buy", gin.H{"buyAmount": "5"})
	require.Equal(suite.T(), http.StatusOK, w.Code)

	w, body := suite.env.do(suite.T(), suite.asUser(httptest.NewRequest(http.MethodGet, "/api/v1/reservations?limit=2", nil)))
	require.Equal(suite.T(), http.StatusOK, w.Code)

	var page []models.Reservation
	decode(suite.T(), body.Data, &page)
	require.Len(suite.T(), page, 2)
	assert.Equal(suite.T(), third.ID, page[0].ID)
	assert.Equal(suite.T(), "3", w.Header().Get("X-Total-Count"))
	assert.Equal(suite.T(), "2", w.Header().Get("X-Total-Pages"))
	assert.Contains(suite.T(), string(body.Meta), `"total":3`)

	w, body = suite.env.do(suite.T(), suite.asUser(httptest.NewRequest(http.MethodGet, "/api/v1/reservations?status=bought", nil)))
	require.Equal(suite.T(), http.StatusOK, w.Code)
	decode(suite.T(), body.Data, &page)
	require.Len(suite.T(), page, 1)
	assert.Equal(suite.T(), first.ID, page[0].ID)

	w, _ = suite.env.do(suite.T(), suite.asUser(httptest.NewRequest(http.MethodGet, "/api/v1/reservations?status=lost", nil)))
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func TestReservationSuite(t *testing.T) {
	suite.Run(t, new(ReservationTestSuite))
}
