package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weatherreport.app/models"
	apperrors "weatherreport.app/pkg/errors"
	"weatherreport.app/providers"
)

// Mock email provider for testing
type mockEmailProvider struct {
	mock.Mock
}

func (m *mockEmailProvider) SendEmail(msg providers.EmailMessage) error {
	args := m.Called(msg)
	return args.Error(0)
}

var _ providers.EmailProvider = (*mockEmailProvider)(nil)

func testReport() models.Report {
	return models.Report{
		ID:          "report-1",
		Location:    testLocation,
		BodyText:    "Weather Report for Atlanta, Georgia, United States\nGood afternoon! Here is your weather report.",
		GeneratedBy: models.GeneratedByRuleBased,
		GeneratedAt: time.Date(2025, 6, 16, 14, 0, 0, 0, time.UTC),
	}
}

func testNormalized() models.NormalizedWeather {
	return models.NormalizedWeather{
		Location: testLocation,
		Current: models.CurrentConditions{
			Temperature: 72.4,
			FeelsLike:   74.1,
			Humidity:    65,
			WindSpeed:   8.3,
			Pressure:    1013,
			Description: "Partly cloudy",
			Icon:        "⛅",
			ObservedAt:  time.Date(2025, 6, 16, 14, 0, 0, 0, time.UTC),
		},
		Forecast: []models.DayForecast{
			{Date: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), MaxTemp: 75, MinTemp: 60, Description: "Partly cloudy"},
		},
	}
}

func TestEmailService_SendReportEmail(t *testing.T) {
	provider := new(mockEmailProvider)
	svc := NewEmailService(provider)

	var sent providers.EmailMessage
	provider.On("SendEmail", mock.AnythingOfType("providers.EmailMessage")).
		Run(func(args mock.Arguments) {
			sent = args.Get(0).(providers.EmailMessage)
		}).
		Return(nil)

	err := svc.SendReportEmail("user@example.com", testReport(), testNormalized())

	require.NoError(t, err)
	assert.Equal(t, "user@example.com", sent.To)
	assert.Equal(t, "Daily Atlanta Weather Report", sent.Subject)
	assert.Contains(t, sent.TextBody, "attached as a PDF")
	assert.Contains(t, sent.TextBody, "Weather Report for Atlanta, Georgia, United States")
	assert.Contains(t, sent.HTMLBody, "<p>Weather Report for Atlanta, Georgia, United States</p>")
	require.NotNil(t, sent.Attachment)
	assert.Equal(t, "weather_report.pdf", sent.Attachment.Filename)
	assert.True(t, len(sent.Attachment.Content) > 0)
	provider.AssertExpectations(t)
}

func TestEmailService_SendReportEmail_EmptyRecipient(t *testing.T) {
	provider := new(mockEmailProvider)
	svc := NewEmailService(provider)

	err := svc.SendReportEmail("", testReport(), testNormalized())

	assert.True(t, apperrors.IsValidationError(err))
	provider.AssertNotCalled(t, "SendEmail", mock.Anything)
}

func TestEmailService_SendReportEmail_InvalidRecipient(t *testing.T) {
	provider := new(mockEmailProvider)
	svc := NewEmailService(provider)

	err := svc.SendReportEmail("not-an-address", testReport(), testNormalized())

	assert.True(t, apperrors.IsValidationError(err))
	provider.AssertNotCalled(t, "SendEmail", mock.Anything)
}

func TestEmailService_SendReportEmail_TransportError(t *testing.T) {
	provider := new(mockEmailProvider)
	svc := NewEmailService(provider)

	provider.On("SendEmail", mock.AnythingOfType("providers.EmailMessage")).
		Return(apperrors.NewEmailError("smtp unavailable", nil))

	err := svc.SendReportEmail("user@example.com", testReport(), testNormalized())

	assert.True(t, apperrors.IsEmailError(err))
}
