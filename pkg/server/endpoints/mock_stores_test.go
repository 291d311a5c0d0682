package endpoints

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/appboardguru/boardguru/pkg/model"
	"github.com/appboardguru/boardguru/pkg/scheduler"
	"github.com/appboardguru/boardguru/pkg/server/store"
)

// MockUsersStore implements store.UsersStore for testing using testify/mock
type MockUsersStore struct {
	mock.Mock
}

func NewMockUsersStore() *MockUsersStore {
	return &MockUsersStore{}
}

func (m *MockUsersStore) CreateUser(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUsersStore) FindUserByID(id string) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersStore) FindUserByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersStore) SaveUser(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUsersStore) ListUsers(limit, offset int) ([]model.User, int64, error) {
	args := m.Called(limit, offset)
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

// MockRegistrationsStore implements store.RegistrationsStore for testing
type MockRegistrationsStore struct {
	mock.Mock
}

func NewMockRegistrationsStore() *MockRegistrationsStore {
	return &MockRegistrationsStore{}
}

func (m *MockRegistrationsStore) CreateRequest(req *model.RegistrationRequest) error {
	args := m.Called(req)
	return args.Error(0)
}

func (m *MockRegistrationsStore) FindRequestByID(id string) (*model.RegistrationRequest, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RegistrationRequest), args.Error(1)
}

func (m *MockRegistrationsStore) FindRequestByToken(plainToken string) (*model.RegistrationRequest, error) {
	args := m.Called(plainToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RegistrationRequest), args.Error(1)
}

func (m *MockRegistrationsStore) FindPendingByEmail(email string) (*model.RegistrationRequest, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RegistrationRequest), args.Error(1)
}

func (m *MockRegistrationsStore) ListRequests(status string, limit, offset int) ([]model.RegistrationRequest, int64, error) {
	args := m.Called(status, limit, offset)
	return args.Get(0).([]model.RegistrationRequest), args.Get(1).(int64), args.Error(2)
}

func (m *MockRegistrationsStore) MarkReviewed(id, status, reviewerID string) error {
	args := m.Called(id, status, reviewerID)
	return args.Error(0)
}

func (m *MockRegistrationsStore) ExpirePending(asOf time.Time) (int64, error) {
	args := m.Called(asOf)
	return args.Get(0).(int64), args.Error(1)
}

// MockOrganizationsStore implements store.OrganizationsStore for testing
type MockOrganizationsStore struct {
	mock.Mock
}

func NewMockOrganizationsStore() *MockOrganizationsStore {
	return &MockOrganizationsStore{}
}

func (m *MockOrganizationsStore) CreateOrganization(org *model.Organization, creatorID string) error {
	args := m.Called(org, creatorID)
	return args.Error(0)
}

func (m *MockOrganizationsStore) FindOrganization(id string) (*model.Organization, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Organization), args.Error(1)
}

func (m *MockOrganizationsStore) FindOrganizationBySlug(slug string) (*model.Organization, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Organization), args.Error(1)
}

func (m *MockOrganizationsStore) ListOrganizationsForUser(userID string, limit, offset int) ([]model.Organization, int64, error) {
	args := m.Called(userID, limit, offset)
	return args.Get(0).([]model.Organization), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrganizationsStore) ListOrganizations(limit, offset int) ([]model.Organization, int64, error) {
	args := m.Called(limit, offset)
	return args.Get(0).([]model.Organization), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrganizationsStore) SaveOrganization(org *model.Organization) error {
	args := m.Called(org)
	return args.Error(0)
}

func (m *MockOrganizationsStore) SetOrganizationStatus(id, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockOrganizationsStore) DeleteOrganization(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockOrganizationsStore) ListMembers(orgID string) ([]store.Member, error) {
	args := m.Called(orgID)
	return args.Get(0).([]store.Member), args.Error(1)
}

func (m *MockOrganizationsStore) AddMember(orgID, userID, role string) error {
	args := m.Called(orgID, userID, role)
	return args.Error(0)
}

func (m *MockOrganizationsStore) UpdateMemberRole(orgID, userID, role string) error {
	args := m.Called(orgID, userID, role)
	return args.Error(0)
}

func (m *MockOrganizationsStore) RemoveMember(orgID, userID string) error {
	args := m.Called(orgID, userID)
	return args.Error(0)
}

func (m *MockOrganizationsStore) MemberUserIDs(orgID string) ([]string, error) {
	args := m.Called(orgID)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockOrganizationsStore) ExportOrganization(id string) (*store.OrganizationExport, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.OrganizationExport), args.Error(1)
}

// MockVaultsStore implements store.VaultsStore for testing
type MockVaultsStore struct {
	mock.Mock
}

func NewMockVaultsStore() *MockVaultsStore {
	return &MockVaultsStore{}
}

func (m *MockVaultsStore) CreateVault(vault *model.Vault) error {
	args := m.Called(vault)
	return args.Error(0)
}

func (m *MockVaultsStore) FindVault(id string) (*model.Vault, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vault), args.Error(1)
}

func (m *MockVaultsStore) ListVaults(orgID, search string, limit, offset int) ([]model.Vault, int64, error) {
	args := m.Called(orgID, search, limit, offset)
	return args.Get(0).([]model.Vault), args.Get(1).(int64), args.Error(2)
}

func (m *MockVaultsStore) SaveVault(vault *model.Vault) error {
	args := m.Called(vault)
	return args.Error(0)
}

func (m *MockVaultsStore) SetVaultStatus(id string, status model.VaultStatus) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockVaultsStore) DeleteVault(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockVaultsStore) AttachAsset(vaultID, assetID, addedBy string) error {
	args := m.Called(vaultID, assetID, addedBy)
	return args.Error(0)
}

func (m *MockVaultsStore) DetachAsset(vaultID, assetID string) error {
	args := m.Called(vaultID, assetID)
	return args.Error(0)
}

func (m *MockVaultsStore) ListVaultAssets(vaultID string) ([]model.Asset, error) {
	args := m.Called(vaultID)
	return args.Get(0).([]model.Asset), args.Error(1)
}

// MockAssetsStore implements store.AssetsStore for testing
type MockAssetsStore struct {
	mock.Mock
}

func NewMockAssetsStore() *MockAssetsStore {
	return &MockAssetsStore{}
}

func (m *MockAssetsStore) CreateAsset(asset *model.Asset, content []byte) error {
	args := m.Called(asset, content)
	return args.Error(0)
}

func (m *MockAssetsStore) FindAsset(id string) (*model.Asset, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Asset), args.Error(1)
}

func (m *MockAssetsStore) ListAssets(orgID, search string, limit, offset int) ([]model.Asset, int64, error) {
	args := m.Called(orgID, search, limit, offset)
	return args.Get(0).([]model.Asset), args.Get(1).(int64), args.Error(2)
}

func (m *MockAssetsStore) SaveAsset(asset *model.Asset) error {
	args := m.Called(asset)
	return args.Error(0)
}

func (m *MockAssetsStore) DeleteAsset(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockAssetsStore) AddVersion(assetID string, content []byte) (int, error) {
	args := m.Called(assetID, content)
	return args.Int(0), args.Error(1)
}

func (m *MockAssetsStore) FetchContent(assetID, version string) (*model.AssetBlob, error) {
	args := m.Called(assetID, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AssetBlob), args.Error(1)
}

func (m *MockAssetsStore) ListVersions(assetID string) ([]store.AssetVersion, error) {
	args := m.Called(assetID)
	return args.Get(0).([]store.AssetVersion), args.Error(1)
}

// MockMeetingsStore implements store.MeetingsStore for testing
type MockMeetingsStore struct {
	mock.Mock
}

func NewMockMeetingsStore() *MockMeetingsStore {
	return &MockMeetingsStore{}
}

func (m *MockMeetingsStore) CreateMeeting(meeting *model.Meeting, inviteeIDs []string) error {
	args := m.Called(meeting, inviteeIDs)
	return args.Error(0)
}

func (m *MockMeetingsStore) FindMeeting(id string) (*model.Meeting, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Meeting), args.Error(1)
}

func (m *MockMeetingsStore) ListMeetings(orgID string, status *model.MeetingStatus, limit, offset int) ([]model.Meeting, int64, error) {
	args := m.Called(orgID, status, limit, offset)
	return args.Get(0).([]model.Meeting), args.Get(1).(int64), args.Error(2)
}

func (m *MockMeetingsStore) SaveMeeting(meeting *model.Meeting) error {
	args := m.Called(meeting)
	return args.Error(0)
}

func (m *MockMeetingsStore) SetMeetingStatus(id string, status model.MeetingStatus) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockMeetingsStore) Invite(meetingID, userID string) error {
	args := m.Called(meetingID, userID)
	return args.Error(0)
}

func (m *MockMeetingsStore) RemoveInvitee(meetingID, userID string) error {
	args := m.Called(meetingID, userID)
	return args.Error(0)
}

func (m *MockMeetingsStore) ListInvitees(meetingID string) ([]model.MeetingInvitee, error) {
	args := m.Called(meetingID)
	return args.Get(0).([]model.MeetingInvitee), args.Error(1)
}

func (m *MockMeetingsStore) SetRSVP(meetingID, userID, response string) error {
	args := m.Called(meetingID, userID, response)
	return args.Error(0)
}

func (m *MockMeetingsStore) DueReminders(asOf time.Time, lead time.Duration) ([]model.Meeting, error) {
	args := m.Called(asOf, lead)
	return args.Get(0).([]model.Meeting), args.Error(1)
}

func (m *MockMeetingsStore) MarkReminderSent(meetingID string, at time.Time) error {
	args := m.Called(meetingID, at)
	return args.Error(0)
}

func (m *MockMeetingsStore) InviteeContacts(meetingID string) ([]scheduler.Contact, error) {
	args := m.Called(meetingID)
	return args.Get(0).([]scheduler.Contact), args.Error(1)
}

// MockNotificationsStore implements store.NotificationsStore for testing
type MockNotificationsStore struct {
	mock.Mock
}

func NewMockNotificationsStore() *MockNotificationsStore {
	return &MockNotificationsStore{}
}

func (m *MockNotificationsStore) CreateNotification(n *model.Notification) error {
	args := m.Called(n)
	return args.Error(0)
}

func (m *MockNotificationsStore) ListNotifications(userID, status string, limit, offset int) ([]model.Notification, int64, error) {
	args := m.Called(userID, status, limit, offset)
	return args.Get(0).([]model.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationsStore) MarkRead(userID, id string) error {
	args := m.Called(userID, id)
	return args.Error(0)
}

func (m *MockNotificationsStore) MarkAllRead(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationsStore) ArchiveNotification(userID, id string) error {
	args := m.Called(userID, id)
	return args.Error(0)
}

func (m *MockNotificationsStore) UnreadCount(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockAnnotationsStore implements store.AnnotationsStore for testing
type MockAnnotationsStore struct {
	mock.Mock
}

func NewMockAnnotationsStore() *MockAnnotationsStore {
	return &MockAnnotationsStore{}
}

func (m *MockAnnotationsStore) SetAnnotation(assetID, name, value string) error {
	args := m.Called(assetID, name, value)
	return args.Error(0)
}

func (m *MockAnnotationsStore) ListAnnotations(assetID string) ([]model.Annotation, error) {
	args := m.Called(assetID)
	return args.Get(0).([]model.Annotation), args.Error(1)
}

func (m *MockAnnotationsStore) DeleteAnnotation(assetID, name string) error {
	args := m.Called(assetID, name)
	return args.Error(0)
}

// MockAuthzStore implements store.AuthzStore for testing
type MockAuthzStore struct {
	mock.Mock
}

func NewMockAuthzStore() *MockAuthzStore {
	return &MockAuthzStore{}
}

func (m *MockAuthzStore) RoleFor(userID, orgID string) (string, error) {
	args := m.Called(userID, orgID)
	return args.String(0), args.Error(1)
}

func (m *MockAuthzStore) IsAllowed(userID, orgID, privilege string) (bool, error) {
	args := m.Called(userID, orgID, privilege)
	return args.Bool(0), args.Error(1)
}

// MockHealthStore implements store.HealthStore for testing
type MockHealthStore struct {
	mock.Mock
}

func NewMockHealthStore() *MockHealthStore {
	return &MockHealthStore{}
}

func (m *MockHealthStore) Ping() error {
	args := m.Called()
	return args.Error(0)
}

// allowMember wires an AuthzStore mock so userID holds role in orgID,
// answering privilege checks through model.RoleAllows.
func allowMember(authz *MockAuthzStore, userID, orgID, role string) {
	authz.On("RoleFor", userID, orgID).Return(role, nil)
	for _, privilege := range []string{model.PrivilegeRead, model.PrivilegeContribute, model.PrivilegeManage} {
		authz.On("IsAllowed", userID, orgID, privilege).Return(model.RoleAllows(role, privilege), nil)
	}
}

// denyMember wires an AuthzStore mock so userID is not a member of
// orgID at all.
func denyMember(authz *MockAuthzStore, userID, orgID string) {
	authz.On("RoleFor", userID, orgID).Return("", store.ErrMembershipNotFound)
	authz.On("IsAllowed", userID, orgID, mock.Anything).Return(false, nil)
}
