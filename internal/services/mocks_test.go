package services

import (
	"context"

	"github.com/srodrigo23/backend-otb-control/internal/models"
	"github.com/srodrigo23/backend-otb-control/internal/repository"
	"github.com/srodrigo23/backend-otb-control/pkg/money"
)

// fakeTxManager runs the transaction body directly against the given
// repositories, no database involved.
type fakeTxManager struct {
	repos *repository.Repositories
}

func (f *fakeTxManager) Transaction(ctx context.Context, fn func(repos *repository.Repositories) error) error {
	return fn(f.repos)
}

// Mock DebtRepository (using embedding to avoid implementing all methods)
type mockDebtRepository struct {
	repository.DebtRepository
	mockFindByID               func(ctx context.Context, id uint) (*models.DebtItem, error)
	mockFindByReadingID        func(ctx context.Context, readingID uint) (*models.DebtItem, error)
	mockFindActive             func(ctx context.Context, neighborID uint) ([]models.DebtItem, error)
	mockFindOverdue            func(ctx context.Context) ([]models.DebtItem, error)
	mockCreate                 func(ctx context.Context, debt *models.DebtItem) error
	mockUpdate                 func(ctx context.Context, debt *models.DebtItem) error
	mockDelete                 func(ctx context.Context, id uint) error
	mockDivideAllAmounts       func(ctx context.Context, divisor int64) (int64, error)
	mockDeletePendingByMeasure func(ctx context.Context, measureID uint) (int64, error)
}

func (m *mockDebtRepository) FindByID(ctx context.Context, id uint) (*models.DebtItem, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, nil
}
func (m *mockDebtRepository) FindByReadingID(ctx context.Context, readingID uint) (*models.DebtItem, error) {
	if m.mockFindByReadingID != nil {
		return m.mockFindByReadingID(ctx, readingID)
	}
	return nil, nil
}
func (m *mockDebtRepository) FindActiveByNeighbor(ctx context.Context, neighborID uint) ([]models.DebtItem, error) {
	if m.mockFindActive != nil {
		return m.mockFindActive(ctx, neighborID)
	}
	return nil, nil
}
func (m *mockDebtRepository) FindOverdue(ctx context.Context) ([]models.DebtItem, error) {
	if m.mockFindOverdue != nil {
		return m.mockFindOverdue(ctx)
	}
	return nil, nil
}
func (m *mockDebtRepository) Create(ctx context.Context, debt *models.DebtItem) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, debt)
	}
	return nil
}
func (m *mockDebtRepository) Update(ctx context.Context, debt *models.DebtItem) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, debt)
	}
	return nil
}
func (m *mockDebtRepository) Delete(ctx context.Context, id uint) error {
	if m.mockDelete != nil {
		return m.mockDelete(ctx, id)
	}
	return nil
}
func (m *mockDebtRepository) DivideAllAmounts(ctx context.Context, divisor int64) (int64, error) {
	if m.mockDivideAllAmounts != nil {
		return m.mockDivideAllAmounts(ctx, divisor)
	}
	return 0, nil
}
func (m *mockDebtRepository) DeletePendingByMeasure(ctx context.Context, measureID uint) (int64, error) {
	if m.mockDeletePendingByMeasure != nil {
		return m.mockDeletePendingByMeasure(ctx, measureID)
	}
	return 0, nil
}

// Mock DebtTypeRepository
type mockDebtTypeRepository struct {
	repository.DebtTypeRepository
	mockFindByID     func(ctx context.Context, id uint) (*models.DebtType, error)
	mockFindOrCreate func(ctx context.Context, name, description string) (*models.DebtType, error)
}

func (m *mockDebtTypeRepository) FindByID(ctx context.Context, id uint) (*models.DebtType, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return &models.DebtType{ID: id}, nil
}
func (m *mockDebtTypeRepository) FindOrCreate(ctx context.Context, name, description string) (*models.DebtType, error) {
	if m.mockFindOrCreate != nil {
		return m.mockFindOrCreate(ctx, name, description)
	}
	return &models.DebtType{ID: 1, Name: name, Description: description}, nil
}

// Mock MeasureRepository
type mockMeasureRepository struct {
	repository.MeasureRepository
	mockFindByID func(ctx context.Context, id uint) (*models.Measure, error)
}

func (m *mockMeasureRepository) FindByID(ctx context.Context, id uint) (*models.Measure, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return &models.Measure{ID: id, Period: "2026-01"}, nil
}

// Mock ReadingRepository
type mockReadingRepository struct {
	repository.ReadingRepository
	mockFindByMeasure func(ctx context.Context, measureID uint) ([]models.MeterReading, error)
	mockFindPrevious  func(ctx context.Context, meterID, beforeID uint) (*models.MeterReading, error)
	mockUpdate        func(ctx context.Context, reading *models.MeterReading) error
}

func (m *mockReadingRepository) FindByMeasure(ctx context.Context, measureID uint) ([]models.MeterReading, error) {
	if m.mockFindByMeasure != nil {
		return m.mockFindByMeasure(ctx, measureID)
	}
	return nil, nil
}
func (m *mockReadingRepository) FindPrevious(ctx context.Context, meterID, beforeID uint) (*models.MeterReading, error) {
	if m.mockFindPrevious != nil {
		return m.mockFindPrevious(ctx, meterID, beforeID)
	}
	return nil, nil
}
func (m *mockReadingRepository) Update(ctx context.Context, reading *models.MeterReading) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, reading)
	}
	return nil
}

// Mock NeighborRepository
type mockNeighborRepository struct {
	repository.NeighborRepository
	mockFindByID    func(ctx context.Context, id uint) (*models.Neighbor, error)
	mockCountActive func(ctx context.Context) (int64, error)
}

func (m *mockNeighborRepository) FindByID(ctx context.Context, id uint) (*models.Neighbor, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return &models.Neighbor{ID: id, FirstName: "Juan", LastName: "Pérez"}, nil
}
func (m *mockNeighborRepository) CountActive(ctx context.Context) (int64, error) {
	if m.mockCountActive != nil {
		return m.mockCountActive(ctx)
	}
	return 0, nil
}

// Mock PaymentRepository
type mockPaymentRepository struct {
	repository.PaymentRepository
	mockCreate           func(ctx context.Context, payment *models.Payment) error
	mockCreateDetail     func(ctx context.Context, detail *models.PaymentDetail) error
	mockCountBySession   func(ctx context.Context, collectDebtID uint) (int64, error)
	mockSumBySession     func(ctx context.Context, collectDebtID uint) (money.Money, error)
	mockCountNeighbors   func(ctx context.Context, collectDebtID uint) (int64, error)
	mockDivideAllAmounts func(ctx context.Context, divisor int64) (int64, int64, error)
}

func (m *mockPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, payment)
	}
	return nil
}
func (m *mockPaymentRepository) CreateDetail(ctx context.Context, detail *models.PaymentDetail) error {
	if m.mockCreateDetail != nil {
		return m.mockCreateDetail(ctx, detail)
	}
	return nil
}
func (m *mockPaymentRepository) CountBySession(ctx context.Context, collectDebtID uint) (int64, error) {
	if m.mockCountBySession != nil {
		return m.mockCountBySession(ctx, collectDebtID)
	}
	return 0, nil
}
func (m *mockPaymentRepository) SumBySession(ctx context.Context, collectDebtID uint) (money.Money, error) {
	if m.mockSumBySession != nil {
		return m.mockSumBySession(ctx, collectDebtID)
	}
	return 0, nil
}
func (m *mockPaymentRepository) CountDistinctNeighborsBySession(ctx context.Context, collectDebtID uint) (int64, error) {
	if m.mockCountNeighbors != nil {
		return m.mockCountNeighbors(ctx, collectDebtID)
	}
	return 0, nil
}
func (m *mockPaymentRepository) DivideAllAmounts(ctx context.Context, divisor int64) (int64, int64, error) {
	if m.mockDivideAllAmounts != nil {
		return m.mockDivideAllAmounts(ctx, divisor)
	}
	return 0, 0, nil
}

// Mock CollectRepository
type mockCollectRepository struct {
	repository.CollectRepository
	mockFindByID         func(ctx context.Context, id uint) (*models.CollectDebt, error)
	mockCreate           func(ctx context.Context, session *models.CollectDebt) error
	mockUpdate           func(ctx context.Context, session *models.CollectDebt) error
	mockDelete           func(ctx context.Context, id uint) error
	mockDivideAllAmounts func(ctx context.Context, divisor int64) (int64, error)
}

func (m *mockCollectRepository) FindByID(ctx context.Context, id uint) (*models.CollectDebt, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return &models.CollectDebt{ID: id}, nil
}
func (m *mockCollectRepository) Create(ctx context.Context, session *models.CollectDebt) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, session)
	}
	return nil
}
func (m *mockCollectRepository) Update(ctx context.Context, session *models.CollectDebt) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, session)
	}
	return nil
}
func (m *mockCollectRepository) Delete(ctx context.Context, id uint) error {
	if m.mockDelete != nil {
		return m.mockDelete(ctx, id)
	}
	return nil
}
func (m *mockCollectRepository) DivideAllAmounts(ctx context.Context, divisor int64) (int64, error) {
	if m.mockDivideAllAmounts != nil {
		return m.mockDivideAllAmounts(ctx, divisor)
	}
	return 0, nil
}

// Mock MeetRepository
type mockMeetRepository struct {
	repository.MeetRepository
	mockFindByID func(ctx context.Context, id uint) (*models.Meet, error)
	mockCreate   func(ctx context.Context, meet *models.Meet) error
	mockUpdate   func(ctx context.Context, meet *models.Meet) error
	mockList     func(ctx context.Context, query *repository.ListQuery) ([]models.Meet, int64, error)
}

func (m *mockMeetRepository) FindByID(ctx context.Context, id uint) (*models.Meet, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return &models.Meet{ID: id}, nil
}
func (m *mockMeetRepository) Create(ctx context.Context, meet *models.Meet) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, meet)
	}
	return nil
}
func (m *mockMeetRepository) Update(ctx context.Context, meet *models.Meet) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, meet)
	}
	return nil
}
func (m *mockMeetRepository) List(ctx context.Context, query *repository.ListQuery) ([]models.Meet, int64, error) {
	if m.mockList != nil {
		return m.mockList(ctx, query)
	}
	return nil, 0, nil
}

// Mock AssistanceRepository
type mockAssistanceRepository struct {
	repository.AssistanceRepository
	mockFindByMeetAndNeighbor func(ctx context.Context, meetID, neighborID uint) (*models.Assistance, error)
	mockCreate                func(ctx context.Context, assistance *models.Assistance) error
	mockUpdate                func(ctx context.Context, assistance *models.Assistance) error
	mockCountByMeet           func(ctx context.Context, meetID uint) (present, absent, onTime int64, err error)
}

func (m *mockAssistanceRepository) FindByMeetAndNeighbor(ctx context.Context, meetID, neighborID uint) (*models.Assistance, error) {
	if m.mockFindByMeetAndNeighbor != nil {
		return m.mockFindByMeetAndNeighbor(ctx, meetID, neighborID)
	}
	return nil, nil
}
func (m *mockAssistanceRepository) Create(ctx context.Context, assistance *models.Assistance) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, assistance)
	}
	return nil
}
func (m *mockAssistanceRepository) Update(ctx context.Context, assistance *models.Assistance) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, assistance)
	}
	return nil
}
func (m *mockAssistanceRepository) CountByMeet(ctx context.Context, meetID uint) (present, absent, onTime int64, err error) {
	if m.mockCountByMeet != nil {
		return m.mockCountByMeet(ctx, meetID)
	}
	return 0, 0, 0, nil
}

// Mock MigrationRepository
type mockMigrationRepository struct {
	repository.MigrationRepository
	mockFindByName func(ctx context.Context, name string) (*models.DataMigration, error)
	mockCreate     func(ctx context.Context, migration *models.DataMigration) error
}

func (m *mockMigrationRepository) FindByName(ctx context.Context, name string) (*models.DataMigration, error) {
	if m.mockFindByName != nil {
		return m.mockFindByName(ctx, name)
	}
	return nil, nil
}
func (m *mockMigrationRepository) Create(ctx context.Context, migration *models.DataMigration) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, migration)
	}
	return nil
}
