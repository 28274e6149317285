package repository

import (
	"context"

	"tailorpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientRepository covers clients and their single stored payment card
type ClientRepository interface {
	Create(ctx context.Context, client *model.Client) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error)
	FindByPhone(ctx context.Context, phone string) (*model.Client, error)
	List(ctx context.Context, page, limit int) ([]model.Client, int64, error)

	CreateCard(ctx context.Context, card *model.CardInfo) error
	FindCardByClientID(ctx context.Context, clientID uuid.UUID) (*model.CardInfo, error)
}

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *model.Client) error {
	return GetDB(ctx, r.db).Create(client).Error
}

func (r *clientRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	var client model.Client
	if err := GetDB(ctx, r.db).First(&client, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) FindByPhone(ctx context.Context, phone string) (*model.Client, error) {
	var client model.Client
	if err := GetDB(ctx, r.db).First(&client, "phone = ?", phone).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) List(ctx context.Context, page, limit int) ([]model.Client, int64, error) {
	var clients []model.Client
	var total int64

	db := GetDB(ctx, r.db)
	// Count clients, not any other collection: the page total is derived from it.
	if err := db.Model(&model.Client{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&clients).Error; err != nil {
		return nil, 0, err
	}

	return clients, total, nil
}

func (r *clientRepository) CreateCard(ctx context.Context, card *model.CardInfo) error {
	return GetDB(ctx, r.db).Create(card).Error
}

func (r *clientRepository) FindCardByClientID(ctx context.Context, clientID uuid.UUID) (*model.CardInfo, error) {
	var card model.CardInfo
	if err := GetDB(ctx, r.db).First(&card, "client_id = ?", clientID).Error; err != nil {
		return nil, err
	}
	return &card, nil
}
