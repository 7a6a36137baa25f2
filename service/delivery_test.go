package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weatherreport.app/models"
	apperrors "weatherreport.app/pkg/errors"
)

// Mock email service for testing the delivery gateway
type mockEmailService struct {
	mock.Mock
}

func (m *mockEmailService) SendReportEmail(to string, report models.Report, data models.NormalizedWeather) error {
	args := m.Called(to, report, data)
	return args.Error(0)
}

var _ EmailServiceInterface = (*mockEmailService)(nil)

func TestEmailDeliveryGateway_Deliver(t *testing.T) {
	emailService := new(mockEmailService)
	repo := new(mockReportRepository)
	gateway := NewEmailDeliveryGateway(emailService, repo)

	report := testReport()
	data := testNormalized()
	emailService.On("SendReportEmail", "user@example.com", report, data).Return(nil)
	repo.On("MarkDelivered", report.ID, "user@example.com").Return(nil)

	assert.True(t, gateway.Deliver(report, data, "user@example.com"))
	emailService.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestEmailDeliveryGateway_Deliver_FailureReturnsFalse(t *testing.T) {
	emailService := new(mockEmailService)
	repo := new(mockReportRepository)
	gateway := NewEmailDeliveryGateway(emailService, repo)

	report := testReport()
	data := testNormalized()
	emailService.On("SendReportEmail", "user@example.com", report, data).
		Return(apperrors.NewEmailError("smtp unavailable", nil))

	assert.False(t, gateway.Deliver(report, data, "user@example.com"))
	repo.AssertNotCalled(t, "MarkDelivered", mock.Anything, mock.Anything)
}

func TestEmailDeliveryGateway_Deliver_MarkDeliveredFailureStillSucceeds(t *testing.T) {
	emailService := new(mockEmailService)
	repo := new(mockReportRepository)
	gateway := NewEmailDeliveryGateway(emailService, repo)

	report := testReport()
	data := testNormalized()
	emailService.On("SendReportEmail", "user@example.com", report, data).Return(nil)
	repo.On("MarkDelivered", report.ID, "user@example.com").
		Return(apperrors.NewDatabaseError("archive down", nil))

	assert.True(t, gateway.Deliver(report, data, "user@example.com"))
}

func TestFileDeliveryGateway_Deliver(t *testing.T) {
	gateway := NewFileDeliveryGateway()
	destination := filepath.Join(t.TempDir(), "reports", "atlanta.pdf")

	assert.True(t, gateway.Deliver(testReport(), testNormalized(), destination))

	content, err := os.ReadFile(destination)
	require.NoError(t, err)
	assert.True(t, len(content) > 0)
	assert.Equal(t, "%PDF", string(content[:4]))
}

func TestRenderReportPDF(t *testing.T) {
	content, err := RenderReportPDF(testReport(), testNormalized())

	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(content[:4]))
}
