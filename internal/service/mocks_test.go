package service

import (
	"context"
	"time"

	"github.com/venturenest/backend/internal/domain"

	"github.com/google/uuid"
)

// Function-field fakes for the repository interfaces. Unset methods return
// zero values so each test only wires what it exercises.

type fakeUserRepo struct {
	createFn              func(ctx context.Context, user *domain.User) error
	getOneByIDFn          func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	getByEmailFn          func(ctx context.Context, email string) (*domain.User, error)
	getByEmailAndTokenFn  func(ctx context.Context, email, token string) (*domain.User, error)
	listByRoleFn          func(ctx context.Context, role domain.Role) ([]domain.User, error)
	updateVerifIssueFn    func(ctx context.Context, userID uuid.UUID, token string, expiry time.Time) error
	updateVerifCountersFn func(ctx context.Context, userID uuid.UUID, lastSent time.Time, count int, cooldownUntil *time.Time) error
	markEmailVerifiedFn   func(ctx context.Context, userID uuid.UUID) error
	updatePasswordFn      func(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, user)
	}
	return nil
}

func (f *fakeUserRepo) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if f.getOneByIDFn != nil {
		return f.getOneByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByEmailAndToken(ctx context.Context, email, token string) (*domain.User, error) {
	if f.getByEmailAndTokenFn != nil {
		return f.getByEmailAndTokenFn(ctx, email, token)
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	if f.listByRoleFn != nil {
		return f.listByRoleFn(ctx, role)
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateVerificationIssue(ctx context.Context, userID uuid.UUID, token string, expiry time.Time) error {
	if f.updateVerifIssueFn != nil {
		return f.updateVerifIssueFn(ctx, userID, token, expiry)
	}
	return nil
}

func (f *fakeUserRepo) UpdateVerificationCounters(ctx context.Context, userID uuid.UUID, lastSent time.Time, count int, cooldownUntil *time.Time) error {
	if f.updateVerifCountersFn != nil {
		return f.updateVerifCountersFn(ctx, userID, lastSent, count, cooldownUntil)
	}
	return nil
}

func (f *fakeUserRepo) MarkEmailVerified(ctx context.Context, userID uuid.UUID) error {
	if f.markEmailVerifiedFn != nil {
		return f.markEmailVerifiedFn(ctx, userID)
	}
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	if f.updatePasswordFn != nil {
		return f.updatePasswordFn(ctx, userID, passwordHash)
	}
	return nil
}

type fakeResetRepo struct {
	createTokenFn        func(ctx context.Context, token *domain.PasswordResetToken) error
	getTokenFn           func(ctx context.Context, token string) (*domain.PasswordResetToken, error)
	markTokenUsedFn      func(ctx context.Context, id uuid.UUID, at time.Time) error
	createAttemptFn      func(ctx context.Context, attempt *domain.PasswordResetAttempt) error
	countAttemptsSinceFn func(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
}

func (f *fakeResetRepo) CreateToken(ctx context.Context, token *domain.PasswordResetToken) error {
	if f.createTokenFn != nil {
		return f.createTokenFn(ctx, token)
	}
	return nil
}

func (f *fakeResetRepo) GetToken(ctx context.Context, token string) (*domain.PasswordResetToken, error) {
	if f.getTokenFn != nil {
		return f.getTokenFn(ctx, token)
	}
	return nil, domain.ErrNotFound
}

func (f *fakeResetRepo) MarkTokenUsed(ctx context.Context, id uuid.UUID, at time.Time) error {
	if f.markTokenUsedFn != nil {
		return f.markTokenUsedFn(ctx, id, at)
	}
	return nil
}

func (f *fakeResetRepo) CreateAttempt(ctx context.Context, attempt *domain.PasswordResetAttempt) error {
	if f.createAttemptFn != nil {
		return f.createAttemptFn(ctx, attempt)
	}
	return nil
}

func (f *fakeResetRepo) CountAttemptsSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	if f.countAttemptsSinceFn != nil {
		return f.countAttemptsSinceFn(ctx, userID, since)
	}
	return 0, nil
}

type fakeConversationRepo struct {
	getOneByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)
	createDirectFn      func(ctx context.Context, conversation *domain.Conversation, userA, userB uuid.UUID) error
	findDirectBetweenFn func(ctx context.Context, userA, userB uuid.UUID) (*domain.Conversation, error)
	listForUserFn       func(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error)
	listMembersFn       func(ctx context.Context, conversationID uuid.UUID) ([]domain.ConversationMember, error)
	isMemberFn          func(ctx context.Context, conversationID, userID uuid.UUID) (bool, error)
	addMemberFn         func(ctx context.Context, member *domain.ConversationMember) error
	removeMemberFn      func(ctx context.Context, conversationID, userID uuid.UUID) error
	countMembersFn      func(ctx context.Context, conversationID uuid.UUID) (int, error)
	setActiveFn         func(ctx context.Context, conversationID uuid.UUID, active bool) error
}

func (f *fakeConversationRepo) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	if f.getOneByIDFn != nil {
		return f.getOneByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (f *fakeConversationRepo) CreateDirect(ctx context.Context, conversation *domain.Conversation, userA, userB uuid.UUID) error {
	if f.createDirectFn != nil {
		return f.createDirectFn(ctx, conversation, userA, userB)
	}
	return nil
}

func (f *fakeConversationRepo) FindDirectBetween(ctx context.Context, userA, userB uuid.UUID) (*domain.Conversation, error) {
	if f.findDirectBetweenFn != nil {
		return f.findDirectBetweenFn(ctx, userA, userB)
	}
	return nil, domain.ErrNotFound
}

func (f *fakeConversationRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error) {
	if f.listForUserFn != nil {
		return f.listForUserFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeConversationRepo) ListMembers(ctx context.Context, conversationID uuid.UUID) ([]domain.ConversationMember, error) {
	if f.listMembersFn != nil {
		return f.listMembersFn(ctx, conversationID)
	}
	return nil, nil
}

func (f *fakeConversationRepo) IsMember(ctx context.Context, conversationID, userID uuid.UUID) (bool, error) {
	if f.isMemberFn != nil {
		return f.isMemberFn(ctx, conversationID, userID)
	}
	return false, nil
}

func (f *fakeConversationRepo) AddMember(ctx context.Context, member *domain.ConversationMember) error {
	if f.addMemberFn != nil {
		return f.addMemberFn(ctx, member)
	}
	return nil
}

func (f *fakeConversationRepo) RemoveMember(ctx context.Context, conversationID, userID uuid.UUID) error {
	if f.removeMemberFn != nil {
		return f.removeMemberFn(ctx, conversationID, userID)
	}
	return nil
}

func (f *fakeConversationRepo) CountMembers(ctx context.Context, conversationID uuid.UUID) (int, error) {
	if f.countMembersFn != nil {
		return f.countMembersFn(ctx, conversationID)
	}
	return 0, nil
}

func (f *fakeConversationRepo) SetActive(ctx context.Context, conversationID uuid.UUID, active bool) error {
	if f.setActiveFn != nil {
		return f.setActiveFn(ctx, conversationID, active)
	}
	return nil
}

type fakeMessageRepo struct {
	createWithRecipientsFn func(ctx context.Context, message *domain.Message, recipients []uuid.UUID) error
	listByConversationFn   func(ctx context.Context, conversationID uuid.UUID, limit int) ([]domain.Message, error)
	markConversationReadFn func(ctx context.Context, conversationID, userID uuid.UUID, at time.Time) error
	countUnreadFn          func(ctx context.Context, conversationID, userID uuid.UUID) (int, error)
	listRecipientsFn       func(ctx context.Context, messageID uuid.UUID) ([]domain.MessageRecipient, error)
}

func (f *fakeMessageRepo) CreateWithRecipients(ctx context.Context, message *domain.Message, recipients []uuid.UUID) error {
	if f.createWithRecipientsFn != nil {
		return f.createWithRecipientsFn(ctx, message, recipients)
	}
	return nil
}

func (f *fakeMessageRepo) ListByConversation(ctx context.Context, conversationID uuid.UUID, limit int) ([]domain.Message, error) {
	if f.listByConversationFn != nil {
		return f.listByConversationFn(ctx, conversationID, limit)
	}
	return nil, nil
}

func (f *fakeMessageRepo) MarkConversationRead(ctx context.Context, conversationID, userID uuid.UUID, at time.Time) error {
	if f.markConversationReadFn != nil {
		return f.markConversationReadFn(ctx, conversationID, userID, at)
	}
	return nil
}

func (f *fakeMessageRepo) CountUnread(ctx context.Context, conversationID, userID uuid.UUID) (int, error) {
	if f.countUnreadFn != nil {
		return f.countUnreadFn(ctx, conversationID, userID)
	}
	return 0, nil
}

func (f *fakeMessageRepo) ListRecipients(ctx context.Context, messageID uuid.UUID) ([]domain.MessageRecipient, error) {
	if f.listRecipientsFn != nil {
		return f.listRecipientsFn(ctx, messageID)
	}
	return nil, nil
}

type fakeStartupRepo struct {
	createFn           func(ctx context.Context, startup *domain.Startup) error
	getOneByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.Startup, error)
	updateFn           func(ctx context.Context, startup *domain.Startup) error
	listByFounderFn    func(ctx context.Context, founderID uuid.UUID) ([]domain.Startup, error)
	listAllFn          func(ctx context.Context) ([]domain.Startup, error)
	countFn            func(ctx context.Context) (int64, error)
	addTeamMemberFn    func(ctx context.Context, member *domain.StartupTeamMember) error
	teamLinkExistsFn   func(ctx context.Context, founderID, memberID uuid.UUID) (bool, error)
	shareStartupFn     func(ctx context.Context, userA, userB uuid.UUID) (bool, error)
	listByTeamMemberFn func(ctx context.Context, userID uuid.UUID) ([]domain.Startup, error)
}

func (f *fakeStartupRepo) Create(ctx context.Context, startup *domain.Startup) error {
	if f.createFn != nil {
		return f.createFn(ctx, startup)
	}
	return nil
}

func (f *fakeStartupRepo) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Startup, error) {
	if f.getOneByIDFn != nil {
		return f.getOneByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (f *fakeStartupRepo) Update(ctx context.Context, startup *domain.Startup) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, startup)
	}
	return nil
}

func (f *fakeStartupRepo) ListByFounder(ctx context.Context, founderID uuid.UUID) ([]domain.Startup, error) {
	if f.listByFounderFn != nil {
		return f.listByFounderFn(ctx, founderID)
	}
	return nil, nil
}

func (f *fakeStartupRepo) ListAll(ctx context.Context) ([]domain.Startup, error) {
	if f.listAllFn != nil {
		return f.listAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeStartupRepo) Count(ctx context.Context) (int64, error) {
	if f.countFn != nil {
		return f.countFn(ctx)
	}
	return 0, nil
}

func (f *fakeStartupRepo) AddTeamMember(ctx context.Context, member *domain.StartupTeamMember) error {
	if f.addTeamMemberFn != nil {
		return f.addTeamMemberFn(ctx, member)
	}
	return nil
}

func (f *fakeStartupRepo) TeamLinkExists(ctx context.Context, founderID, memberID uuid.UUID) (bool, error) {
	if f.teamLinkExistsFn != nil {
		return f.teamLinkExistsFn(ctx, founderID, memberID)
	}
	return false, nil
}

func (f *fakeStartupRepo) ShareStartup(ctx context.Context, userA, userB uuid.UUID) (bool, error) {
	if f.shareStartupFn != nil {
		return f.shareStartupFn(ctx, userA, userB)
	}
	return false, nil
}

func (f *fakeStartupRepo) ListByTeamMember(ctx context.Context, userID uuid.UUID) ([]domain.Startup, error) {
	if f.listByTeamMemberFn != nil {
		return f.listByTeamMemberFn(ctx, userID)
	}
	return nil, nil
}

type fakeInvestmentRepo struct {
	createFn         func(ctx context.Context, investment *domain.Investment) error
	getOneByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.Investment, error)
	listByInvestorFn func(ctx context.Context, investorID uuid.UUID) ([]domain.Investment, error)
	listByStartupFn  func(ctx context.Context, startupID uuid.UUID) ([]domain.Investment, error)
	linkExistsFn     func(ctx context.Context, investorID, founderID uuid.UUID) (bool, error)
}

func (f *fakeInvestmentRepo) Create(ctx context.Context, investment *domain.Investment) error {
	if f.createFn != nil {
		return f.createFn(ctx, investment)
	}
	return nil
}

func (f *fakeInvestmentRepo) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Investment, error) {
	if f.getOneByIDFn != nil {
		return f.getOneByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInvestmentRepo) ListByInvestor(ctx context.Context, investorID uuid.UUID) ([]domain.Investment, error) {
	if f.listByInvestorFn != nil {
		return f.listByInvestorFn(ctx, investorID)
	}
	return nil, nil
}

func (f *fakeInvestmentRepo) ListByStartup(ctx context.Context, startupID uuid.UUID) ([]domain.Investment, error) {
	if f.listByStartupFn != nil {
		return f.listByStartupFn(ctx, startupID)
	}
	return nil, nil
}

func (f *fakeInvestmentRepo) LinkExists(ctx context.Context, investorID, founderID uuid.UUID) (bool, error) {
	if f.linkExistsFn != nil {
		return f.linkExistsFn(ctx, investorID, founderID)
	}
	return false, nil
}

type fakeNotificationRepo struct {
	createFn      func(ctx context.Context, notification *domain.Notification) error
	createBulkFn  func(ctx context.Context, notifications []domain.Notification) error
	markAllReadFn func(ctx context.Context, userID uuid.UUID, at time.Time) error
	countUnreadFn func(ctx context.Context, userID uuid.UUID) (int, error)
	listRecentFn  func(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error)
}

func (f *fakeNotificationRepo) Create(ctx context.Context, notification *domain.Notification) error {
	if f.createFn != nil {
		return f.createFn(ctx, notification)
	}
	return nil
}

func (f *fakeNotificationRepo) CreateBulk(ctx context.Context, notifications []domain.Notification) error {
	if f.createBulkFn != nil {
		return f.createBulkFn(ctx, notifications)
	}
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID, at time.Time) error {
	if f.markAllReadFn != nil {
		return f.markAllReadFn(ctx, userID, at)
	}
	return nil
}

func (f *fakeNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	if f.countUnreadFn != nil {
		return f.countUnreadFn(ctx, userID)
	}
	return 0, nil
}

func (f *fakeNotificationRepo) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	if f.listRecentFn != nil {
		return f.listRecentFn(ctx, userID, limit)
	}
	return nil, nil
}

type fakeSessionStore struct {
	methods  map[string]string
	failures map[string]int
	locked   map[string]bool
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{
		methods:  map[string]string{},
		failures: map[string]int{},
		locked:   map[string]bool{},
	}
}

func (f *fakeSessionStore) VerificationMethod(_ context.Context, email string) (string, error) {
	return f.methods[email], nil
}

func (f *fakeSessionStore) SetVerificationMethod(_ context.Context, email, method string) error {
	f.methods[email] = method
	return nil
}

func (f *fakeSessionStore) IsLockedOut(_ context.Context, email string) (bool, error) {
	return f.locked[email], nil
}

func (f *fakeSessionStore) RecordLoginFailure(_ context.Context, email string) error {
	f.failures[email]++
	if f.failures[email] >= 5 {
		f.locked[email] = true
	}
	return nil
}

func (f *fakeSessionStore) ClearLoginFailures(_ context.Context, email string) error {
	delete(f.failures, email)
	delete(f.locked, email)
	return nil
}

type fakeOtpGenerator struct {
	code string
}

func (f *fakeOtpGenerator) RandomCode(int) string { return f.code }
