package service

import (
	"context"
	"testing"

	"github.com/venturenest/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser(role domain.Role) *domain.User {
	return &domain.User{ID: uuid.New(), Email: string(role) + "@example.com", Role: role}
}

func TestCanMessage_SelfDenied(t *testing.T) {
	svc := newMessagingService(&fakeConversationRepo{}, &fakeMessageRepo{}, &fakeUserRepo{}, &fakeStartupRepo{}, &fakeInvestmentRepo{})

	founder := testUser(domain.RoleFounder)
	allowed, err := svc.CanMessage(context.Background(), founder, founder)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestCanMessage_ManagerPrivilegeIsSenderSideOnly(t *testing.T) {
	svc := newMessagingService(&fakeConversationRepo{}, &fakeMessageRepo{}, &fakeUserRepo{}, &fakeStartupRepo{}, &fakeInvestmentRepo{})

	manager := testUser(domain.RoleManager)
	for _, other := range []*domain.User{
		testUser(domain.RoleFounder),
		testUser(domain.RoleTeamMember),
		testUser(domain.RoleInvestor),
	} {
		allowed, err := svc.CanMessage(context.Background(), manager, other)
		require.NoError(t, err)
		assert.True(t, allowed, "a manager may write to any %s", other.Role)

		allowed, err = svc.CanMessage(context.Background(), other, manager)
		require.NoError(t, err)
		assert.False(t, allowed, "a %s writing to a manager has no relationship rule and is denied", other.Role)
	}
}

func TestCanMessage_InvestorFounderNeedsInvestment(t *testing.T) {
	investor := testUser(domain.RoleInvestor)
	founder := testUser(domain.RoleFounder)

	linked := false
	investments := &fakeInvestmentRepo{
		linkExistsFn: func(_ context.Context, investorID, founderID uuid.UUID) (bool, error) {
			assert.Equal(t, investor.ID, investorID)
			assert.Equal(t, founder.ID, founderID)
			return linked, nil
		},
	}
	svc := newMessagingService(&fakeConversationRepo{}, &fakeMessageRepo{}, &fakeUserRepo{}, &fakeStartupRepo{}, investments)

	allowed, err := svc.CanMessage(context.Background(), investor, founder)
	require.NoError(t, err)
	assert.False(t, allowed, "no investment, no messaging")

	linked = true
	allowed, err = svc.CanMessage(context.Background(), founder, investor)
	require.NoError(t, err)
	assert.True(t, allowed, "the rule holds in both directions")
}

func TestCanMessage_FounderTeamMemberSymmetry(t *testing.T) {
	founder := testUser(domain.RoleFounder)
	member := testUser(domain.RoleTeamMember)
	outsider := testUser(domain.RoleTeamMember)

	startups := &fakeStartupRepo{
		teamLinkExistsFn: func(_ context.Context, founderID, memberID uuid.UUID) (bool, error) {
			return founderID == founder.ID && memberID == member.ID, nil
		},
	}
	svc := newMessagingService(&fakeConversationRepo{}, &fakeMessageRepo{}, &fakeUserRepo{}, startups, &fakeInvestmentRepo{})

	allowed, err := svc.CanMessage(context.Background(), founder, member)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.CanMessage(context.Background(), member, founder)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.CanMessage(context.Background(), founder, outsider)
	require.NoError(t, err)
	assert.False(t, allowed, "team member on someone else's startup is denied")
}

func TestCanMessage_TeamMembersNeedSharedStartup(t *testing.T) {
	memberA := testUser(domain.RoleTeamMember)
	memberB := testUser(domain.RoleTeamMember)

	shared := false
	startups := &fakeStartupRepo{
		shareStartupFn: func(_ context.Context, _, _ uuid.UUID) (bool, error) {
			return shared, nil
		},
	}
	svc := newMessagingService(&fakeConversationRepo{}, &fakeMessageRepo{}, &fakeUserRepo{}, startups, &fakeInvestmentRepo{})

	allowed, err := svc.CanMessage(context.Background(), memberA, memberB)
	require.NoError(t, err)
	assert.False(t, allowed)

	shared = true
	allowed, err = svc.CanMessage(context.Background(), memberA, memberB)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestCanMessage_InvestorTeamMemberDenied(t *testing.T) {
	svc := newMessagingService(&fakeConversationRepo{}, &fakeMessageRepo{}, &fakeUserRepo{}, &fakeStartupRepo{}, &fakeInvestmentRepo{})

	allowed, err := svc.CanMessage(context.Background(), testUser(domain.RoleInvestor), testUser(domain.RoleTeamMember))
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestStartDirectConversation_Idempotent(t *testing.T) {
	investor := testUser(domain.RoleInvestor)
	founder := testUser(domain.RoleFounder)

	usersByID := map[uuid.UUID]*domain.User{investor.ID: investor, founder.ID: founder}
	users := &fakeUserRepo{
		getOneByIDFn: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
			if u, ok := usersByID[id]; ok {
				return u, nil
			}
			return nil, domain.ErrNotFound
		},
	}
	investments := &fakeInvestmentRepo{
		linkExistsFn: func(_ context.Context, _, _ uuid.UUID) (bool, error) { return true, nil },
	}

	var stored *domain.Conversation
	conversations := &fakeConversationRepo{
		findDirectBetweenFn: func(_ context.Context, _, _ uuid.UUID) (*domain.Conversation, error) {
			if stored == nil {
				return nil, domain.ErrNotFound
			}
			return stored, nil
		},
		createDirectFn: func(_ context.Context, conversation *domain.Conversation, userA, userB uuid.UUID) error {
			stored = conversation
			assert.Equal(t, investor.ID, userA)
			assert.Equal(t, founder.ID, userB)
			return nil
		},
	}

	svc := newMessagingService(conversations, &fakeMessageRepo{}, users, &fakeStartupRepo{}, investments)

	first, created, err := svc.StartDirectConversation(context.Background(), investor.ID, founder.ID)
	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, first)
	assert.Equal(t, domain.ConversationDirect, first.Type)

	second, created, err := svc.StartDirectConversation(context.Background(), investor.ID, founder.ID)
	require.NoError(t, err)
	assert.False(t, created, "second call reuses the existing conversation")
	assert.Equal(t, first.ID, second.ID)
}

func TestStartDirectConversation_DuplicateInsertFallsBackToWinner(t *testing.T) {
	investor := testUser(domain.RoleInvestor)
	founder := testUser(domain.RoleFounder)

	usersByID := map[uuid.UUID]*domain.User{investor.ID: investor, founder.ID: founder}
	users := &fakeUserRepo{
		getOneByIDFn: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
			return usersByID[id], nil
		},
	}
	investments := &fakeInvestmentRepo{
		linkExistsFn: func(_ context.Context, _, _ uuid.UUID) (bool, error) { return true, nil },
	}

	// The pre-insert lookup sees nothing, then a concurrent call wins the
	// insert: the unique pair key rejects ours and the winner's row is
	// returned instead.
	winner := &domain.Conversation{ID: uuid.New(), Type: domain.ConversationDirect}
	lookups := 0
	conversations := &fakeConversationRepo{
		findDirectBetweenFn: func(_ context.Context, _, _ uuid.UUID) (*domain.Conversation, error) {
			lookups++
			if lookups == 1 {
				return nil, domain.ErrNotFound
			}
			return winner, nil
		},
		createDirectFn: func(_ context.Context, _ *domain.Conversation, _, _ uuid.UUID) error {
			return domain.ErrDuplicateEntry
		},
	}

	svc := newMessagingService(conversations, &fakeMessageRepo{}, users, &fakeStartupRepo{}, investments)

	conversation, created, err := svc.StartDirectConversation(context.Background(), investor.ID, founder.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, winner.ID, conversation.ID)
	assert.Equal(t, 2, lookups)
}

func TestStartDirectConversation_DisallowedPair(t *testing.T) {
	investor := testUser(domain.RoleInvestor)
	founder := testUser(domain.RoleFounder)

	usersByID := map[uuid.UUID]*domain.User{investor.ID: investor, founder.ID: founder}
	users := &fakeUserRepo{
		getOneByIDFn: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
			return usersByID[id], nil
		},
	}

	svc := newMessagingService(&fakeConversationRepo{}, &fakeMessageRepo{}, users, &fakeStartupRepo{}, &fakeInvestmentRepo{})

	_, _, err := svc.StartDirectConversation(context.Background(), investor.ID, founder.ID)
	assert.ErrorIs(t, err, ErrMessagingNotAllowed)
}

func TestSendMessage_RecipientsExcludeSender(t *testing.T) {
	conversationID := uuid.New()
	sender := uuid.New()
	memberB := uuid.New()
	memberC := uuid.New()

	var gotRecipients []uuid.UUID
	conversations := &fakeConversationRepo{
		isMemberFn: func(_ context.Context, _, userID uuid.UUID) (bool, error) {
			return userID == sender, nil
		},
		listMembersFn: func(_ context.Context, _ uuid.UUID) ([]domain.ConversationMember, error) {
			return []domain.ConversationMember{
				{UserID: sender},
				{UserID: memberB},
				{UserID: memberC},
			}, nil
		},
	}
	messages := &fakeMessageRepo{
		createWithRecipientsFn: func(_ context.Context, message *domain.Message, recipients []uuid.UUID) error {
			gotRecipients = recipients
			assert.Equal(t, conversationID, message.ConversationID)
			return nil
		},
	}

	svc := newMessagingService(conversations, messages, &fakeUserRepo{}, &fakeStartupRepo{}, &fakeInvestmentRepo{})

	message, err := svc.SendMessage(context.Background(), conversationID, sender, "hello", domain.MessageText, "")
	require.NoError(t, err)
	require.NotNil(t, message)

	// Three members including the sender produce exactly two delivery rows.
	assert.Len(t, gotRecipients, 2)
	assert.ElementsMatch(t, []uuid.UUID{memberB, memberC}, gotRecipients)
}

func TestSendMessage_NonMemberRejected(t *testing.T) {
	conversations := &fakeConversationRepo{
		isMemberFn: func(_ context.Context, _, _ uuid.UUID) (bool, error) { return false, nil },
	}

	svc := newMessagingService(conversations, &fakeMessageRepo{}, &fakeUserRepo{}, &fakeStartupRepo{}, &fakeInvestmentRepo{})

	_, err := svc.SendMessage(context.Background(), uuid.New(), uuid.New(), "hi", domain.MessageText, "")
	assert.ErrorIs(t, err, ErrNotMember)
}

func TestLeaveConversation_ArchivesEmptyDirect(t *testing.T) {
	conversationID := uuid.New()
	archived := false

	conversations := &fakeConversationRepo{
		getOneByIDFn: func(_ context.Context, id uuid.UUID) (*domain.Conversation, error) {
			return &domain.Conversation{ID: id, Type: domain.ConversationDirect, IsActive: true}, nil
		},
		countMembersFn: func(_ context.Context, _ uuid.UUID) (int, error) { return 0, nil },
		setActiveFn: func(_ context.Context, id uuid.UUID, active bool) error {
			assert.Equal(t, conversationID, id)
			assert.False(t, active)
			archived = true
			return nil
		},
	}

	svc := newMessagingService(conversations, &fakeMessageRepo{}, &fakeUserRepo{}, &fakeStartupRepo{}, &fakeInvestmentRepo{})

	require.NoError(t, svc.LeaveConversation(context.Background(), conversationID, uuid.New()))
	assert.True(t, archived)
}

func TestLeaveConversation_KeepsDirectWithRemainingMember(t *testing.T) {
	conversations := &fakeConversationRepo{
		getOneByIDFn: func(_ context.Context, id uuid.UUID) (*domain.Conversation, error) {
			return &domain.Conversation{ID: id, Type: domain.ConversationDirect, IsActive: true}, nil
		},
		countMembersFn: func(_ context.Context, _ uuid.UUID) (int, error) { return 1, nil },
		setActiveFn: func(_ context.Context, _ uuid.UUID, _ bool) error {
			t.Fatal("conversation with a remaining member must not be archived")
			return nil
		},
	}

	svc := newMessagingService(conversations, &fakeMessageRepo{}, &fakeUserRepo{}, &fakeStartupRepo{}, &fakeInvestmentRepo{})

	require.NoError(t, svc.LeaveConversation(context.Background(), uuid.New(), uuid.New()))
}
