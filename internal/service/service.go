package service

import (
	"context"
	"io"

	"farmsight-backend/internal/domain"

	"github.com/shopspring/decimal"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, password, occupation string) (*domain.User, string, string, error)
	Login(ctx context.Context, email, password string) (string, string, error)
	// LoginWithGoogle exchanges a Google ID token for our own token pair,
	// creating the account on first sign-in.
	LoginWithGoogle(ctx context.Context, idToken string) (string, string, error)
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
	Logout(ctx context.Context, refresh string) error
}

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID, name, email, occupation string) (*domain.User, error)
	// DeleteAccount removes the user and every row they own.
	DeleteAccount(ctx context.Context, userID string) error
}

// RecordTransactionInput is the fully-typed payload for recording a
// ledger transaction, whatever the wire encoding was.
type RecordTransactionInput struct {
	Amount       decimal.Decimal
	Currency     string
	Direction    string
	Notes        string
	ReceiptImage *string
}

// UpdateTransactionInput carries only the fields the caller wants to
// change; nil pointers leave the stored value alone.
type UpdateTransactionInput struct {
	Amount       *decimal.Decimal
	Currency     *string
	Direction    *string
	Notes        *string
	ReceiptImage *string
}

type FinanceService interface {
	Record(ctx context.Context, userID string, in RecordTransactionInput) (*domain.Transaction, error)
	Update(ctx context.Context, userID, txID string, in UpdateTransactionInput) (*domain.Transaction, error)
	Delete(ctx context.Context, userID, txID string) error
	List(ctx context.Context, userID string) ([]domain.Transaction, error)
	// Recompute replays the user's ledger oldest-first and repairs any
	// stored totals broken by earlier updates or deletes. Returns the
	// number of rows whose total changed.
	Recompute(ctx context.Context, userID string) (int, error)
}

type CropInput struct {
	CropType    string
	Variety     string
	GrowthStage string
	AmountSown  float64
	ExtraNotes  string
	Location    string
	CropImage   *string
}

type CropUpdateInput struct {
	CropType    *string
	Variety     *string
	GrowthStage *string
	AmountSown  *float64
	ExtraNotes  *string
	Location    *string
	CropImage   *string
}

type CropService interface {
	Create(ctx context.Context, userID string, in CropInput) (*domain.Crop, error)
	Get(ctx context.Context, userID, cropID string) (*domain.Crop, error)
	List(ctx context.Context, userID string) ([]domain.Crop, error)
	Update(ctx context.Context, userID, cropID string, in CropUpdateInput) (*domain.Crop, error)
	Delete(ctx context.Context, userID, cropID string) error
}

type ReminderService interface {
	Create(ctx context.Context, userID, date, content string) (*domain.Reminder, error)
	List(ctx context.Context, userID string) ([]domain.Reminder, error)
	UpdateContent(ctx context.Context, userID, reminderID, content string) (*domain.Reminder, error)
	Delete(ctx context.Context, userID, reminderID string) error
}

type PlotInput struct {
	Name         string
	Latitude     float64
	Longitude    float64
	AreaHectares float64
	CropID       *string
}

type PlotService interface {
	Create(ctx context.Context, userID string, in PlotInput) (*domain.Plot, error)
	List(ctx context.Context, userID string) ([]domain.Plot, error)
	Update(ctx context.Context, userID, plotID string, in PlotInput) (*domain.Plot, error)
	Delete(ctx context.Context, userID, plotID string) error
}

type SoilReadingInput struct {
	PlotID      string
	Moisture    float64
	PH          float64
	Temperature float64
}

type SoilService interface {
	Record(ctx context.Context, userID string, in SoilReadingInput) (*domain.SoilReading, error)
	ListByPlot(ctx context.Context, userID, plotID string) ([]domain.SoilReading, error)
	LatestPerPlot(ctx context.Context, userID string) ([]domain.SoilReading, error)
}

type DiagnosisService interface {
	// Diagnose stores the uploaded leaf image and asks the external
	// classifier what it shows.
	Diagnose(ctx context.Context, userID, filename string, image io.Reader) (*domain.Diagnosis, error)
}

type EmailService interface {
	SendReminderDigest(ctx context.Context, email, name string, reminders []domain.Reminder) error
}
