package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/cuentaclara/cuentaclara-backend/internal/apperrors"
	"github.com/cuentaclara/cuentaclara-backend/internal/core/domain"
	portssvc "github.com/cuentaclara/cuentaclara-backend/internal/core/ports/services"
	"github.com/cuentaclara/cuentaclara-backend/internal/core/services"
	"github.com/cuentaclara/cuentaclara-backend/internal/dto"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.JournalSvcFacade
	tenantID        string
	userID          string
	cashAccount     domain.Account
	revenueAccount  domain.Account
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo)

	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID: uuid.NewString(),
		TenantID:  suite.tenantID,
		Code:      "1105",
		Name:      "Caja general",
		Type:      domain.Asset,
		Nature:    domain.NatureDebit,
		IsActive:  true,
	}
	suite.revenueAccount = domain.Account{
		AccountID: uuid.NewString(),
		TenantID:  suite.tenantID,
		Code:      "4135",
		Name:      "Comercio al por menor",
		Type:      domain.Revenue,
		Nature:    domain.NatureCredit,
		IsActive:  true,
	}
}

func (suite *JournalServiceTestSuite) accountsMap() map[string]domain.Account {
	return map[string]domain.Account{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
}

func (suite *JournalServiceTestSuite) balancedRequest() dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Description: "Venta de contado",
		Lines: []dto.JournalEntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(1190), Credit: decimal.Zero},
			{AccountID: suite.revenueAccount.AccountID, Debit: decimal.Zero, Credit: decimal.NewFromInt(1190)},
		},
	}
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("*domain.JournalEntry")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(suite.tenantID, entry.TenantID)
	suite.Equal(domain.Draft, entry.Status)
	suite.Equal(domain.SourceManual, entry.Source)
	suite.True(entry.TotalDebit.Equal(decimal.NewFromInt(1190)))
	suite.True(entry.TotalCredit.Equal(decimal.NewFromInt(1190)))
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.Len(entry.Lines, 2)

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Unbalanced() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[1].Credit = decimal.NewFromInt(1000)

	_, err := suite.service.CreateEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnbalanced)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_SingleLine() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines = req.Lines[:1]

	_, err := suite.service.CreateEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_BothSidesSet() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[0].Credit = decimal.NewFromInt(10)
	req.Lines[1].Credit = decimal.NewFromInt(1200)

	_, err := suite.service.CreateEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_NeitherSideSet() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[0].Debit = decimal.Zero

	_, err := suite.service.CreateEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_MissingDescription() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Description = ""

	_, err := suite.service.CreateEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_UnknownAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()

	partial := map[string]domain.Account{
		suite.cashAccount.AccountID: suite.cashAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, mock.Anything).Return(partial, nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_InactiveAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()

	accounts := suite.accountsMap()
	inactive := accounts[suite.revenueAccount.AccountID]
	inactive.IsActive = false
	accounts[suite.revenueAccount.AccountID] = inactive
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, mock.Anything).Return(accounts, nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateAutoEntry_PostedDirectly() {
	ctx := context.Background()
	params := dto.AutoEntryParams{
		Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Description: "Venta factura FV-001",
		Source:      domain.SourceInvoiceSale,
		Refs:        domain.EntryRefs{InvoiceID: uuid.NewString()},
		Lines: []dto.JournalEntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
			{AccountID: suite.revenueAccount.AccountID, Debit: decimal.Zero, Credit: decimal.NewFromInt(500)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("*domain.JournalEntry")).Return(nil).Once()

	entry, err := suite.service.CreateAutoEntry(ctx, suite.tenantID, params, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, entry.Status)
	suite.Equal(domain.SourceInvoiceSale, entry.Source)
	suite.Equal(params.Refs.InvoiceID, entry.Refs.InvoiceID)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{EntryID: entryID, TenantID: suite.tenantID, Status: domain.Draft}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(draft, nil).Once()
	suite.mockJournalRepo.On("UpdateEntryStatus", ctx, suite.tenantID, entryID, domain.Posted, "", suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	entry, err := suite.service.PostEntry(ctx, suite.tenantID, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, entry.Status)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostEntry_AlreadyPosted() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{EntryID: entryID, TenantID: suite.tenantID, Status: domain.Posted}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(posted, nil).Once()

	_, err := suite.service.PostEntry(ctx, suite.tenantID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateEntryStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestVoidEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{EntryID: entryID, TenantID: suite.tenantID, Status: domain.Posted}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(posted, nil).Once()
	suite.mockJournalRepo.On("UpdateEntryStatus", ctx, suite.tenantID, entryID, domain.Voided, "duplicate entry", suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	entry, err := suite.service.VoidEntry(ctx, suite.tenantID, entryID, "duplicate entry", suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Voided, entry.Status)
	suite.Equal("duplicate entry", entry.VoidReason)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestVoidEntry_DraftRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{EntryID: entryID, TenantID: suite.tenantID, Status: domain.Draft}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(draft, nil).Once()

	_, err := suite.service.VoidEntry(ctx, suite.tenantID, entryID, "mistake", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *JournalServiceTestSuite) TestVoidEntry_ReasonRequired() {
	ctx := context.Background()

	_, err := suite.service.VoidEntry(ctx, suite.tenantID, uuid.NewString(), "", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindEntryByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestVoidEntry_AlreadyVoided() {
	ctx := context.Background()
	entryID := uuid.NewString()
	voided := &domain.JournalEntry{EntryID: entryID, TenantID: suite.tenantID, Status: domain.Voided}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID).Return(voided, nil).Once()

	_, err := suite.service.VoidEntry(ctx, suite.tenantID, entryID, "again", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *JournalServiceTestSuite) TestListEntries_InvalidRange() {
	ctx := context.Background()
	from := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := suite.service.ListEntries(ctx, suite.tenantID, from, to)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
