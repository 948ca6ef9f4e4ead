package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dafoundation/disaster-relief-api/internal/constants"
	"github.com/dafoundation/disaster-relief-api/internal/models"
	"github.com/dafoundation/disaster-relief-api/internal/policy"
	"github.com/dafoundation/disaster-relief-api/internal/repository"
	"github.com/dafoundation/disaster-relief-api/internal/services"
)

// DonationHandlerTestSuite defines the test suite for DonationHandler
type DonationHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *DonationHandler
}

// SetupTest runs before each test
func (suite *DonationHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Donation{})
	suite.Require().NoError(err)

	suite.handler = NewDonationHandler(services.NewDonationService(repository.NewDonationRepository(suite.db)))

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *DonationHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// newRouter builds a router with the session middleware and a stub auth
// middleware that injects the given caller, standing in for RequireAuth.
func (suite *DonationHandlerTestSuite) newRouter(caller policy.Caller) *gin.Engine {
	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))
	r.Use(func(c *gin.Context) {
		if !caller.IsAnonymous() {
			c.Set(constants.ContextKeyCaller, caller)
		}
		c.Next()
	})

	donations := r.Group("/donations")
	{
		donations.GET("", suite.handler.List)
		donations.POST("", suite.handler.Create)
		donations.GET("/inventory", suite.handler.Inventory)
		donations.GET("/:id", suite.handler.Get)
		donations.POST("/edit/:id", suite.handler.Update)
		donations.POST("/distribute/:id", suite.handler.Distribute)
	}
	return r
}

func (suite *DonationHandlerTestSuite) createTestUser(id, email, role string) policy.Caller {
	user := &models.User{
		ID:           id,
		Email:        email,
		FullName:     "Test User",
		PasswordHash: "hashedpassword",
		Role:         role,
	}
	suite.db.Create(user)
	return policy.Caller{UserID: id, Roles: []string{role}}
}

func (suite *DonationHandlerTestSuite) createTestDonation(ownerID string, status models.DonationStatus) *models.Donation {
	donation := &models.Donation{
		DonorUserID:  &ownerID,
		ResourceType: "Water",
		Quantity:     10,
		DateDonated:  time.Now(),
		Status:       status,
	}
	suite.db.Create(donation)
	return donation
}

func (suite *DonationHandlerTestSuite) doJSON(r *gin.Engine, method, url string, payload interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestList_ScopedToCaller tests that regular users only see their own donations
func (suite *DonationHandlerTestSuite) TestList_ScopedToCaller() {
	donor := suite.createTestUser("donor-1", "donor@example.com", constants.RoleUser)
	other := suite.createTestUser("other-1", "other@example.com", constants.RoleUser)
	suite.createTestDonation(donor.UserID, models.DonationStatusPending)
	suite.createTestDonation(other.UserID, models.DonationStatusPending)

	w := suite.doJSON(suite.newRouter(donor), "GET", "/donations", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	donations := response["donations"].([]interface{})
	suite.Require().Len(donations, 1)
	first := donations[0].(map[string]interface{})
	assert.Equal(suite.T(), donor.UserID, first["donor_user_id"])
}

// TestList_AdminSeesAll tests that admins see every donation
func (suite *DonationHandlerTestSuite) TestList_AdminSeesAll() {
	donor := suite.createTestUser("donor-1", "donor@example.com", constants.RoleUser)
	other := suite.createTestUser("other-1", "other@example.com", constants.RoleUser)
	admin := suite.createTestUser("admin-1", "admin@example.com", constants.RoleAdmin)
	suite.createTestDonation(donor.UserID, models.DonationStatusPending)
	suite.createTestDonation(other.UserID, models.DonationStatusPending)

	w := suite.doJSON(suite.newRouter(admin), "GET", "/donations", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(suite.T(), response["donations"].([]interface{}), 2)
}

// TestCreate_StampsCallerAsDonor tests that ownership comes from the session
func (suite *DonationHandlerTestSuite) TestCreate_StampsCallerAsDonor() {
	donor := suite.createTestUser("donor-1", "donor@example.com", constants.RoleUser)

	// A forged donor_user_id in the payload is not part of the form and
	// must never reach the record.
	w := suite.doJSON(suite.newRouter(donor), "POST", "/donations", map[string]interface{}{
		"resource_type": "Blankets",
		"quantity":      25,
		"donor_user_id": "someone-else",
	})
	assert.Equal(suite.T(), http.StatusSeeOther, w.Code)
	assert.Equal(suite.T(), "/donations", w.Header().Get("Location"))

	var donation models.Donation
	suite.Require().NoError(suite.db.First(&donation).Error)
	suite.Require().NotNil(donation.DonorUserID)
	assert.Equal(suite.T(), donor.UserID, *donation.DonorUserID)
	assert.Equal(suite.T(), models.DonationStatusPending, donation.Status)
}

// TestCreate_InvalidPayload tests binding validation
func (suite *DonationHandlerTestSuite) TestCreate_InvalidPayload() {
	donor := suite.createTestUser("donor-1", "donor@example.com", constants.RoleUser)

	w := suite.doJSON(suite.newRouter(donor), "POST", "/donations", map[string]interface{}{
		"quantity": 25,
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestGet_NotOwnerRedirects tests that foreign records redirect to the index
func (suite *DonationHandlerTestSuite) TestGet_NotOwnerRedirects() {
	donor := suite.createTestUser("donor-1", "donor@example.com", constants.RoleUser)
	other := suite.createTestUser("other-1", "other@example.com", constants.RoleUser)
	donation := suite.createTestDonation(donor.UserID, models.DonationStatusPending)

	w := suite.doJSON(suite.newRouter(other), "GET", fmt.Sprintf("/donations/%d", donation.ID), nil)
	assert.Equal(suite.T(), http.StatusSeeOther, w.Code)
	assert.Equal(suite.T(), "/donations", w.Header().Get("Location"))
}

// TestGet_Anonymous tests that unauthenticated callers land on sign-in
func (suite *DonationHandlerTestSuite) TestGet_Anonymous() {
	donor := suite.createTestUser("donor-1", "donor@example.com", constants.RoleUser)
	donation := suite.createTestDonation(donor.UserID, models.DonationStatusPending)

	w := suite.doJSON(suite.newRouter(policy.Anonymous), "GET", fmt.Sprintf("/donations/%d", donation.ID), nil)
	assert.Equal(suite.T(), http.StatusSeeOther, w.Code)
	assert.Equal(suite.T(), "/auth/signin", w.Header().Get("Location"))
}

// TestDistribute_NonAdminRedirects tests the admin gate on distribution
func (suite *DonationHandlerTestSuite) TestDistribute_NonAdminRedirects() {
	donor := suite.createTestUser("donor-1", "donor@example.com", constants.RoleUser)
	donation := suite.createTestDonation(donor.UserID, models.DonationStatusPending)

	w := suite.doJSON(suite.newRouter(donor), "POST", fmt.Sprintf("/donations/distribute/%d", donation.ID), map[string]interface{}{
		"status": "Approved",
	})
	assert.Equal(suite.T(), http.StatusSeeOther, w.Code)
	assert.Equal(suite.T(), "/donations", w.Header().Get("Location"))

	// Status unchanged.
	var stored models.Donation
	suite.Require().NoError(suite.db.First(&stored, donation.ID).Error)
	assert.Equal(suite.T(), models.DonationStatusPending, stored.Status)
}

// TestDistribute_AdminSuccess tests a successful admin transition
func (suite *DonationHandlerTestSuite) TestDistribute_AdminSuccess() {
	donor := suite.createTestUser("donor-1", "donor@example.com", constants.RoleUser)
	admin := suite.createTestUser("admin-1", "admin@example.com", constants.RoleAdmin)
	donation := suite.createTestDonation(donor.UserID, models.DonationStatusApproved)

	w := suite.doJSON(suite.newRouter(admin), "POST", fmt.Sprintf("/donations/distribute/%d", donation.ID), map[string]interface{}{
		"status":   "Distributed",
		"location": "Shelter A",
	})
	assert.Equal(suite.T(), http.StatusSeeOther, w.Code)
	assert.Equal(suite.T(), "/donations", w.Header().Get("Location"))

	var stored models.Donation
	suite.Require().NoError(suite.db.First(&stored, donation.ID).Error)
	assert.Equal(suite.T(), models.DonationStatusDistributed, stored.Status)
	suite.Require().NotNil(stored.DistributedByUserID)
	assert.Equal(suite.T(), admin.UserID, *stored.DistributedByUserID)
	assert.NotNil(suite.T(), stored.DateDistributed)
}

// TestDistribute_DoubleSubmitRedirects tests the terminal-state double submit
func (suite *DonationHandlerTestSuite) TestDistribute_DoubleSubmitRedirects() {
	donor := suite.createTestUser("donor-1", "donor@example.com", constants.RoleUser)
	admin := suite.createTestUser("admin-1", "admin@example.com", constants.RoleAdmin)
	donation := suite.createTestDonation(donor.UserID, models.DonationStatusDistributed)

	w := suite.doJSON(suite.newRouter(admin), "POST", fmt.Sprintf("/donations/distribute/%d", donation.ID), map[string]interface{}{
		"status": "Distributed",
	})
	assert.Equal(suite.T(), http.StatusSeeOther, w.Code)
	assert.Equal(suite.T(), "/donations", w.Header().Get("Location"))
}

// TestUpdate_FrozenRedirects tests editing a donation past Pending
func (suite *DonationHandlerTestSuite) TestUpdate_FrozenRedirects() {
	donor := suite.createTestUser("donor-1", "donor@example.com", constants.RoleUser)
	donation := suite.createTestDonation(donor.UserID, models.DonationStatusApproved)

	w := suite.doJSON(suite.newRouter(donor), "POST", fmt.Sprintf("/donations/edit/%d", donation.ID), map[string]interface{}{
		"resource_type": "Soup",
		"quantity":      3,
	})
	assert.Equal(suite.T(), http.StatusSeeOther, w.Code)
	assert.Equal(suite.T(), "/donations", w.Header().Get("Location"))

	var stored models.Donation
	suite.Require().NoError(suite.db.First(&stored, donation.ID).Error)
	assert.Equal(suite.T(), "Water", stored.ResourceType)
}

// TestInventory_Admin tests the admin inventory view
func (suite *DonationHandlerTestSuite) TestInventory_Admin() {
	donor := suite.createTestUser("donor-1", "donor@example.com", constants.RoleUser)
	admin := suite.createTestUser("admin-1", "admin@example.com", constants.RoleAdmin)
	suite.createTestDonation(donor.UserID, models.DonationStatusPending)

	w := suite.doJSON(suite.newRouter(admin), "GET", "/donations/inventory", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	inventory := response["inventory"].([]interface{})
	suite.Require().Len(inventory, 1)
	first := inventory[0].(map[string]interface{})
	assert.Equal(suite.T(), "Water", first["resource_type"])
	assert.EqualValues(suite.T(), 10, first["total_quantity"])
}

// TestGet_InvalidID tests a non-numeric id parameter
func (suite *DonationHandlerTestSuite) TestGet_InvalidID() {
	donor := suite.createTestUser("donor-1", "donor@example.com", constants.RoleUser)

	w := suite.doJSON(suite.newRouter(donor), "GET", "/donations/notanumber", nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestSuite runs the test suite
func TestDonationHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DonationHandlerTestSuite))
}
