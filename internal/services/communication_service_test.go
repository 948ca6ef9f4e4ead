package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dafoundation/disaster-relief-api/internal/constants"
	"github.com/dafoundation/disaster-relief-api/internal/models"
	"github.com/dafoundation/disaster-relief-api/internal/policy"
	"github.com/dafoundation/disaster-relief-api/internal/repository"
	"github.com/dafoundation/disaster-relief-api/internal/utils"
)

// CommunicationServiceTestSuite defines the test suite for CommunicationService
type CommunicationServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *CommunicationService

	alice policy.Caller
	bob   policy.Caller
	carol policy.Caller
}

// SetupTest runs before each test
func (suite *CommunicationServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.VolunteerTask{},
		&models.VolunteerCommunication{},
	)
	suite.Require().NoError(err)

	suite.service = NewCommunicationService(repository.NewCommunicationRepository(suite.db))

	suite.alice = suite.createTestCaller("alice", "alice@example.com")
	suite.bob = suite.createTestCaller("bob", "bob@example.com")
	suite.carol = suite.createTestCaller("carol", "carol@example.com")
}

// TearDownTest runs after each test
func (suite *CommunicationServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *CommunicationServiceTestSuite) createTestCaller(id, email string) policy.Caller {
	user := &models.User{
		ID:           id,
		Email:        email,
		FullName:     "Test User",
		PasswordHash: "hashedpassword",
		Role:         constants.RoleUser,
	}
	suite.db.Create(user)
	return policy.Caller{UserID: id, Roles: []string{constants.RoleUser}}
}

func (suite *CommunicationServiceTestSuite) sendDirect(from, to policy.Caller, subject string) *models.VolunteerCommunication {
	message, err := suite.service.Send(from, MessageInput{
		RecipientUserID: &to.UserID,
		Subject:         subject,
		Message:         "hello",
	})
	suite.Require().NoError(err)
	return message
}

// TestSend_Direct tests sending a direct message
func (suite *CommunicationServiceTestSuite) TestSend_Direct() {
	message := suite.sendDirect(suite.alice, suite.bob, "Shift change")

	suite.Require().NotNil(message.SenderUserID)
	assert.Equal(suite.T(), suite.alice.UserID, *message.SenderUserID)
	suite.Require().NotNil(message.RecipientUserID)
	assert.Equal(suite.T(), suite.bob.UserID, *message.RecipientUserID)
	assert.Equal(suite.T(), models.MessageTypeGeneral, message.MessageType)
	assert.False(suite.T(), message.IsRead)
	assert.False(suite.T(), message.SentAt.IsZero())
}

// TestSend_Broadcast tests sending without a recipient
func (suite *CommunicationServiceTestSuite) TestSend_Broadcast() {
	message, err := suite.service.Send(suite.alice, MessageInput{
		Subject:     "Storm warning",
		Message:     "Shelter closes early today",
		MessageType: string(models.MessageTypeAnnouncement),
	})
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), message.RecipientUserID)
	assert.Equal(suite.T(), models.MessageTypeAnnouncement, message.MessageType)
}

// TestSend_Validation tests subject/message/type validation
func (suite *CommunicationServiceTestSuite) TestSend_Validation() {
	_, err := suite.service.Send(suite.alice, MessageInput{
		Subject: "  ",
		Message: "body",
	})
	assert.ErrorIs(suite.T(), err, ErrMessageFieldsRequired)

	_, err = suite.service.Send(suite.alice, MessageInput{
		Subject:     "Subject",
		Message:     "body",
		MessageType: "Carrier Pigeon",
	})
	assert.ErrorIs(suite.T(), err, ErrInvalidMessageType)
}

// TestGet_MarksReadForRecipient tests the read-once flip
func (suite *CommunicationServiceTestSuite) TestGet_MarksReadForRecipient() {
	message := suite.sendDirect(suite.alice, suite.bob, "Shift change")

	got, err := suite.service.Get(suite.bob, message.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), got.IsRead)
	assert.NotNil(suite.T(), got.ReadAt)

	var stored models.VolunteerCommunication
	suite.Require().NoError(suite.db.First(&stored, message.ID).Error)
	assert.True(suite.T(), stored.IsRead)
	firstReadAt := stored.ReadAt

	// A second open leaves the original read stamp untouched.
	_, err = suite.service.Get(suite.bob, message.ID)
	assert.NoError(suite.T(), err)
	suite.Require().NoError(suite.db.First(&stored, message.ID).Error)
	assert.Equal(suite.T(), firstReadAt, stored.ReadAt)
}

// TestGet_SenderDoesNotMarkRead tests that the sender's view leaves is_read alone
func (suite *CommunicationServiceTestSuite) TestGet_SenderDoesNotMarkRead() {
	message := suite.sendDirect(suite.alice, suite.bob, "Shift change")

	_, err := suite.service.Get(suite.alice, message.ID)
	assert.NoError(suite.T(), err)

	var stored models.VolunteerCommunication
	suite.Require().NoError(suite.db.First(&stored, message.ID).Error)
	assert.False(suite.T(), stored.IsRead)
}

// TestGet_ThirdParty tests that non-participants cannot read a direct message
func (suite *CommunicationServiceTestSuite) TestGet_ThirdParty() {
	message := suite.sendDirect(suite.alice, suite.bob, "Shift change")

	_, err := suite.service.Get(suite.carol, message.ID)
	assert.ErrorIs(suite.T(), err, policy.ErrNotOwner)
}

// TestGet_BroadcastVisibleToAll tests broadcast visibility
func (suite *CommunicationServiceTestSuite) TestGet_BroadcastVisibleToAll() {
	broadcast, err := suite.service.Send(suite.alice, MessageInput{
		Subject: "Storm warning",
		Message: "Shelter closes early today",
	})
	suite.Require().NoError(err)

	_, err = suite.service.Get(suite.carol, broadcast.ID)
	assert.NoError(suite.T(), err)
}

// TestList_ParticipantScope tests that listing follows the participant rule
func (suite *CommunicationServiceTestSuite) TestList_ParticipantScope() {
	suite.sendDirect(suite.alice, suite.bob, "To Bob")
	suite.sendDirect(suite.carol, suite.alice, "To Alice")
	suite.sendDirect(suite.bob, suite.carol, "Not Alice's")
	_, err := suite.service.Send(suite.bob, MessageInput{
		Subject: "Broadcast",
		Message: "everyone sees this",
	})
	suite.Require().NoError(err)

	messages, total, err := suite.service.List(suite.alice, utils.PaginationParams{Page: 1, Limit: 20})
	assert.NoError(suite.T(), err)
	assert.EqualValues(suite.T(), 3, total)
	suite.Require().Len(messages, 3)
	for _, m := range messages {
		assert.NotEqual(suite.T(), "Not Alice's", m.Subject)
	}
}

// TestReply_AddressesOriginalSender tests the reply flow
func (suite *CommunicationServiceTestSuite) TestReply_AddressesOriginalSender() {
	message := suite.sendDirect(suite.alice, suite.bob, "Shift change")

	reply, err := suite.service.Reply(suite.bob, message.ID, "works for me")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Re: Shift change", reply.Subject)
	suite.Require().NotNil(reply.RecipientUserID)
	assert.Equal(suite.T(), suite.alice.UserID, *reply.RecipientUserID)
	suite.Require().NotNil(reply.SenderUserID)
	assert.Equal(suite.T(), suite.bob.UserID, *reply.SenderUserID)

	// Replying to a reply does not stack prefixes.
	second, err := suite.service.Reply(suite.alice, reply.ID, "great")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Re: Shift change", second.Subject)
}

// TestReply_ThirdParty tests that non-participants cannot reply
func (suite *CommunicationServiceTestSuite) TestReply_ThirdParty() {
	message := suite.sendDirect(suite.alice, suite.bob, "Shift change")

	_, err := suite.service.Reply(suite.carol, message.ID, "let me in")
	assert.ErrorIs(suite.T(), err, policy.ErrNotOwner)
}

// TestDelete_SenderOnly tests that only the sender may delete
func (suite *CommunicationServiceTestSuite) TestDelete_SenderOnly() {
	message := suite.sendDirect(suite.alice, suite.bob, "Shift change")

	err := suite.service.Delete(suite.bob, message.ID)
	assert.ErrorIs(suite.T(), err, policy.ErrNotOwner)

	err = suite.service.Delete(suite.alice, message.ID)
	assert.NoError(suite.T(), err)

	var gone models.VolunteerCommunication
	assert.Error(suite.T(), suite.db.First(&gone, message.ID).Error)
}

// TestDelete_NotFound tests deleting a nonexistent message
func (suite *CommunicationServiceTestSuite) TestDelete_NotFound() {
	err := suite.service.Delete(suite.alice, 9999)
	assert.ErrorIs(suite.T(), err, ErrMessageNotFound)
}

// TestSuite runs the test suite
func TestCommunicationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CommunicationServiceTestSuite))
}
