package client

import (
	"context"

	"github.com/dmitrijs2005/schooladmin/internal/client/models"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error

	SendOTP(ctx context.Context, mobile string) error
	VerifyOTP(ctx context.Context, mobile, code string) (*models.AuthResult, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*models.Profile, error)

	// Record calls decode into out the way json.Unmarshal does.
	ListRecords(ctx context.Context, kind models.Kind, out any) error
	GetRecord(ctx context.Context, kind models.Kind, id string, out any) error
	CreateRecord(ctx context.Context, kind models.Kind, in, out any) error
	UpdateRecord(ctx context.Context, kind models.Kind, id string, in, out any) error
	DeleteRecord(ctx context.Context, kind models.Kind, id string) error
}
