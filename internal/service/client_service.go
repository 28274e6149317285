package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tailorpos/internal/model"
	"tailorpos/internal/repository"
	"tailorpos/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateClientRequest struct {
	Name   string `json:"name" binding:"required"`
	Phone  string `json:"phone" binding:"required,min=10,max=20"`
	Gender string `json:"gender" binding:"required"`
}

type AddCardRequest struct {
	CardNumber string `json:"card_number" binding:"required,len=16,numeric"`
	CVV        string `json:"cvv" binding:"required,len=3,numeric"`
	ExpiryDate string `json:"expiry_date" binding:"required"` // MM/YY
	CardType   string `json:"card_type" binding:"required"`
}

type ClientResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Gender    string    `json:"gender"`
	HasCard   bool      `json:"has_card"`
	CreatedAt string    `json:"created_at"`
}

// CardResponse exposes only the last four digits of the stored card
type CardResponse struct {
	ClientID   uuid.UUID `json:"client_id"`
	LastFour   string    `json:"last_four"`
	ExpiryDate string    `json:"expiry_date"`
	CardType   string    `json:"card_type"`
}

// ClientService manages the walk-in client registry and stored payment cards
type ClientService interface {
	CreateClient(ctx context.Context, req CreateClientRequest) (*ClientResponse, error)
	GetClientByID(ctx context.Context, id string) (*ClientResponse, error)
	GetClientByPhone(ctx context.Context, phone string) (*ClientResponse, error)
	ListClients(ctx context.Context, page, limit int) ([]ClientResponse, int64, error)
	// AddCard stores the single payment card for the client with this phone number.
	AddCard(ctx context.Context, phone string, req AddCardRequest) (*CardResponse, error)
	GetCard(ctx context.Context, clientID string) (*CardResponse, error)
}

type clientService struct {
	repo repository.ClientRepository
}

func NewClientService(repo repository.ClientRepository) ClientService {
	return &clientService{repo: repo}
}

func (s *clientService) toResponse(ctx context.Context, client *model.Client) *ClientResponse {
	hasCard := false
	if _, err := s.repo.FindCardByClientID(ctx, client.ID); err == nil {
		hasCard = true
	}
	return &ClientResponse{
		ID:        client.ID,
		Name:      client.Name,
		Phone:     client.Phone,
		Gender:    client.Gender,
		HasCard:   hasCard,
		CreatedAt: client.CreatedAt.Format(time.RFC3339),
	}
}

func (s *clientService) CreateClient(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	if !model.ValidGender(req.Gender) {
		return nil, apperr.BadRequestf("invalid gender: must be male or female")
	}

	client := &model.Client{
		Name:   req.Name,
		Phone:  req.Phone,
		Gender: req.Gender,
	}
	if err := s.repo.Create(ctx, client); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflictf("a client with this phone number already exists")
		}
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return s.toResponse(ctx, client), nil
}

func (s *clientService) GetClientByID(ctx context.Context, id string) (*ClientResponse, error) {
	clientID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.BadRequestf("invalid client id")
	}
	client, err := s.repo.FindByID(ctx, clientID)
	if err != nil {
		return nil, apperr.NotFoundf("client not found")
	}
	return s.toResponse(ctx, client), nil
}

func (s *clientService) GetClientByPhone(ctx context.Context, phone string) (*ClientResponse, error) {
	client, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, apperr.NotFoundf("no client registered with this phone number")
	}
	return s.toResponse(ctx, client), nil
}

func (s *clientService) ListClients(ctx context.Context, page, limit int) ([]ClientResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	clients, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch clients: %w", err)
	}

	responses := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		responses = append(responses, *s.toResponse(ctx, &clients[i]))
	}

	return responses, total, nil
}

func (s *clientService) AddCard(ctx context.Context, phone string, req AddCardRequest) (*CardResponse, error) {
	client, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, apperr.NotFoundf("no client registered with this phone number")
	}

	if !model.ValidCardType(req.CardType) {
		return nil, apperr.BadRequestf("invalid card type: must be Visa or MasterCard")
	}

	expiry, err := time.Parse("01/06", req.ExpiryDate)
	if err != nil {
		return nil, apperr.BadRequestf("invalid expiry date, expected MM/YY")
	}

	card := &model.CardInfo{
		ClientID:   client.ID,
		CardNumber: req.CardNumber,
		CVV:        req.CVV,
		ExpiryDate: expiry,
		CardType:   req.CardType,
	}
	if err := s.repo.CreateCard(ctx, card); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflictf("client already has a card on file")
		}
		return nil, fmt.Errorf("failed to store card: %w", err)
	}

	return toCardResponse(card), nil
}

func (s *clientService) GetCard(ctx context.Context, clientID string) (*CardResponse, error) {
	id, err := uuid.Parse(clientID)
	if err != nil {
		return nil, apperr.BadRequestf("invalid client id")
	}

	card, err := s.repo.FindCardByClientID(ctx, id)
	if err != nil {
		return nil, apperr.NotFoundf("no card on file for this client")
	}

	return toCardResponse(card), nil
}

func toCardResponse(card *model.CardInfo) *CardResponse {
	lastFour := card.CardNumber
	if len(lastFour) > 4 {
		lastFour = lastFour[len(lastFour)-4:]
	}
	return &CardResponse{
		ClientID:   card.ClientID,
		LastFour:   lastFour,
		ExpiryDate: card.ExpiryDate.Format("01/06"),
		CardType:   card.CardType,
	}
}
