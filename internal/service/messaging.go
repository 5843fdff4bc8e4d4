package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/venturenest/backend/internal/domain"
	"github.com/venturenest/backend/internal/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type messagingService struct {
	conversationRepository repository.Conversations
	messageRepository      repository.Messages
	userRepository         repository.Users
	startupRepository      repository.Startups
	investmentRepository   repository.Investments
}

func newMessagingService(
	conversationRepository repository.Conversations,
	messageRepository repository.Messages,
	userRepository repository.Users,
	startupRepository repository.Startups,
	investmentRepository repository.Investments,
) *messagingService {
	return &messagingService{
		conversationRepository: conversationRepository,
		messageRepository:      messageRepository,
		userRepository:         userRepository,
		startupRepository:      startupRepository,
		investmentRepository:   investmentRepository,
	}
}

// CanMessage decides whether sender may open a direct thread with recipient.
// Self-messaging is always denied, a manager sender may message anyone, and
// the remaining role pairs require an actual business relationship between
// the two accounts. The manager privilege does not flow backwards: a founder
// writing to a manager falls through to the default deny.
func (s *messagingService) CanMessage(ctx context.Context, sender, recipient *domain.User) (bool, error) {
	if sender.ID == recipient.ID {
		return false, nil
	}
	if sender.Role == domain.RoleManager {
		return true, nil
	}

	switch {
	case rolePair(sender, recipient, domain.RoleInvestor, domain.RoleFounder):
		investor, founder := orderPair(sender, recipient, domain.RoleInvestor)
		return s.investmentRepository.LinkExists(ctx, investor.ID, founder.ID)

	case rolePair(sender, recipient, domain.RoleFounder, domain.RoleTeamMember):
		founder, member := orderPair(sender, recipient, domain.RoleFounder)
		return s.startupRepository.TeamLinkExists(ctx, founder.ID, member.ID)

	case sender.Role == domain.RoleTeamMember && recipient.Role == domain.RoleTeamMember:
		return s.startupRepository.ShareStartup(ctx, sender.ID, recipient.ID)
	}

	return false, nil
}

func rolePair(a, b *domain.User, first, second domain.Role) bool {
	return (a.Role == first && b.Role == second) || (a.Role == second && b.Role == first)
}

// orderPair returns the two users with the one holding wantFirst first.
func orderPair(a, b *domain.User, wantFirst domain.Role) (*domain.User, *domain.User) {
	if a.Role == wantFirst {
		return a, b
	}
	return b, a
}

func (s *messagingService) StartDirectConversation(ctx context.Context, senderID, recipientID uuid.UUID) (*domain.Conversation, bool, error) {
	if senderID == recipientID {
		return nil, false, ErrCannotMessageSelf
	}

	sender, err := s.userRepository.GetOneByID(ctx, senderID)
	if err != nil {
		return nil, false, err
	}
	recipient, err := s.userRepository.GetOneByID(ctx, recipientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, ErrUserNotFound
		}
		return nil, false, err
	}

	allowed, err := s.CanMessage(ctx, sender, recipient)
	if err != nil {
		return nil, false, err
	}
	if !allowed {
		return nil, false, ErrMessagingNotAllowed
	}

	existing, err := s.conversationRepository.FindDirectBetween(ctx, senderID, recipientID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, false, fmt.Errorf("generate conversation id failed: %w", err)
	}
	conversation := &domain.Conversation{
		ID:        id,
		Title:     fmt.Sprintf("%s & %s", sender.FullName(), recipient.FullName()),
		Type:      domain.ConversationDirect,
		CreatedBy: senderID,
		IsActive:  true,
	}
	if err := s.conversationRepository.CreateDirect(ctx, conversation, senderID, recipientID); err != nil {
		// A concurrent call for the same pair can win the insert; fall back
		// to the row it created.
		if errors.Is(err, domain.ErrDuplicateEntry) {
			existing, findErr := s.conversationRepository.FindDirectBetween(ctx, senderID, recipientID)
			if findErr != nil {
				return nil, false, findErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	return conversation, true, nil
}

func (s *messagingService) SendMessage(ctx context.Context, conversationID, senderID uuid.UUID, content string, messageType domain.MessageType, attachment string) (*domain.Message, error) {
	member, err := s.conversationRepository.IsMember(ctx, conversationID, senderID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotMember
	}

	members, err := s.conversationRepository.ListMembers(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	recipients := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		if m.UserID != senderID {
			recipients = append(recipients, m.UserID)
		}
	}

	if messageType == "" {
		messageType = domain.MessageText
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate message id failed: %w", err)
	}
	message := &domain.Message{
		ID:             id,
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		Type:           messageType,
		Attachment:     sql.NullString{String: attachment, Valid: attachment != ""},
	}
	if err := s.messageRepository.CreateWithRecipients(ctx, message, recipients); err != nil {
		return nil, err
	}

	return message, nil
}

func (s *messagingService) ListConversations(ctx context.Context, userID uuid.UUID) ([]ConversationSummary, error) {
	conversations, err := s.conversationRepository.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]ConversationSummary, 0, len(conversations))
	for _, conversation := range conversations {
		unread, err := s.messageRepository.CountUnread(ctx, conversation.ID, userID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, ConversationSummary{
			Conversation: conversation,
			UnreadCount:  unread,
		})
	}

	return summaries, nil
}

func (s *messagingService) ListMessages(ctx context.Context, conversationID, userID uuid.UUID, limit int) ([]domain.Message, error) {
	member, err := s.conversationRepository.IsMember(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotMember
	}

	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.messageRepository.ListByConversation(ctx, conversationID, limit)
}

// MessageReceipts returns the per-recipient read state of one message.
// Only members of the conversation may look.
func (s *messagingService) MessageReceipts(ctx context.Context, conversationID, messageID, userID uuid.UUID) ([]domain.MessageRecipient, error) {
	member, err := s.conversationRepository.IsMember(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotMember
	}

	return s.messageRepository.ListRecipients(ctx, messageID)
}

func (s *messagingService) MarkConversationRead(ctx context.Context, conversationID, userID uuid.UUID) error {
	member, err := s.conversationRepository.IsMember(ctx, conversationID, userID)
	if err != nil {
		return err
	}
	if !member {
		return ErrNotMember
	}

	return s.messageRepository.MarkConversationRead(ctx, conversationID, userID, time.Now())
}

func (s *messagingService) LeaveConversation(ctx context.Context, conversationID, userID uuid.UUID) error {
	conversation, err := s.conversationRepository.GetOneByID(ctx, conversationID)
	if err != nil {
		return err
	}

	if err := s.conversationRepository.RemoveMember(ctx, conversationID, userID); err != nil {
		return err
	}

	if conversation.Type != domain.ConversationDirect {
		return nil
	}

	remaining, err := s.conversationRepository.CountMembers(ctx, conversationID)
	if err != nil {
		return err
	}
	if remaining == 0 {
		return s.conversationRepository.SetActive(ctx, conversationID, false)
	}
	return nil
}
