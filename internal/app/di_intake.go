package app

import (
	"fmt"

	"github.com/lawoffice/intake/internal/intake/client"
	intakeHTTP "github.com/lawoffice/intake/internal/intake/http"
	"github.com/lawoffice/intake/internal/intake/http/dto"
	intakeRepository "github.com/lawoffice/intake/internal/intake/repository"
	intakeUseCase "github.com/lawoffice/intake/internal/intake/usecase"
	"github.com/lawoffice/intake/internal/intake/validator"
	"github.com/lawoffice/intake/internal/notification"
)

// NotificationSender returns the email backend selected by NOTIFICATION_PROVIDER.
// An unconfigured backend yields a sender that reports notification as disabled.
func (c *Container) NotificationSender() notification.Sender {
	c.notificationSenderInit.Do(func() {
		c.notificationSender = c.initNotificationSender()
	})
	return c.notificationSender
}

// SubmissionMailer returns the notifier that announces new submissions to the firm.
func (c *Container) SubmissionMailer() (intakeUseCase.SubmissionNotifier, error) {
	var err error
	c.submissionMailerInit.Do(func() {
		c.submissionMailer, err = c.initSubmissionMailer()
		if err != nil {
			c.setInitError("submissionMailer", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.submissionMailer, c.initError("submissionMailer")
}

// FormValidator returns the contact form validator configured from site content and upload limits.
func (c *Container) FormValidator() (*validator.Validator, error) {
	var err error
	c.formValidatorInit.Do(func() {
		c.formValidator, err = c.initFormValidator()
		if err != nil {
			c.setInitError("formValidator", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.formValidator, c.initError("formValidator")
}

// SubmissionRepository returns the repository for the configured database driver.
func (c *Container) SubmissionRepository() (intakeUseCase.SubmissionRepository, error) {
	var err error
	c.submissionRepoInit.Do(func() {
		c.submissionRepo, err = c.initSubmissionRepository()
		if err != nil {
			c.setInitError("submissionRepo", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.submissionRepo, c.initError("submissionRepo")
}

// SubmissionUseCase returns the intake use case, instrumented when metrics are enabled.
func (c *Container) SubmissionUseCase() (intakeUseCase.SubmissionUseCase, error) {
	var err error
	c.submissionUseCaseInit.Do(func() {
		c.submissionUseCase, err = c.initSubmissionUseCase()
		if err != nil {
			c.setInitError("submissionUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.submissionUseCase, c.initError("submissionUseCase")
}

// SubmissionHandler returns the HTTP handler of the intake endpoint.
func (c *Container) SubmissionHandler() (*intakeHTTP.SubmissionHandler, error) {
	var err error
	c.submissionHandlerInit.Do(func() {
		c.submissionHandler, err = c.initSubmissionHandler()
		if err != nil {
			c.setInitError("submissionHandler", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.submissionHandler, c.initError("submissionHandler")
}

// SubmitClient creates a client that posts forms to endpoint, or to SUBMIT_ENDPOINT when empty.
// The caller owns the client and should Close it.
func (c *Container) SubmitClient(endpoint string) (*client.Client, error) {
	v, err := c.FormValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to get form validator for submit client: %w", err)
	}
	if endpoint == "" {
		endpoint = c.config.SubmitEndpoint
	}

	return client.New(client.Config{
		Endpoint: endpoint,
		Timeout:  c.config.SubmitTimeout,
	}, v, c.Logger()), nil
}

func (c *Container) initNotificationSender() notification.Sender {
	sender := notification.NewSender(
		c.config.NotificationProvider,
		notification.APIConfig{
			APIKey:  c.config.EmailAPIKey,
			BaseURL: c.config.EmailAPIBaseURL,
			Timeout: c.config.EmailTimeout,
		},
		notification.SMTPConfig{
			Host:     c.config.SMTPHost,
			Port:     c.config.SMTPPort,
			Username: c.config.SMTPUsername,
			Password: c.config.SMTPPassword,
			UseTLS:   c.config.SMTPUseTLS,
			Timeout:  c.config.EmailTimeout,
		},
	)
	return sender
}

func (c *Container) initSubmissionMailer() (intakeUseCase.SubmissionNotifier, error) {
	content, err := c.SiteContent()
	if err != nil {
		return nil, fmt.Errorf("failed to get site content for submission mailer: %w", err)
	}

	to := c.config.EmailTo
	if to == "" {
		to = content.Contact.Email
	}

	return notification.NewSubmissionMailer(c.NotificationSender(), notification.SubmissionMailerConfig{
		From:     c.config.EmailFrom,
		To:       []string{to},
		FirmName: content.Firm.Name,
	}), nil
}

func (c *Container) initFormValidator() (*validator.Validator, error) {
	content, err := c.SiteContent()
	if err != nil {
		return nil, fmt.Errorf("failed to get site content for form validator: %w", err)
	}

	return validator.New(validator.Policy{
		AllowedPracticeAreas: content.PracticeAreaTitles(),
		Upload: validator.UploadPolicy{
			MaxFileBytes:  c.config.UploadMaxFileBytes,
			MaxFiles:      c.config.UploadMaxFiles,
			MaxTotalBytes: c.config.UploadMaxTotalBytes,
		},
	}), nil
}

func (c *Container) initSubmissionRepository() (intakeUseCase.SubmissionRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for submission repository: %w", err)
	}

	repo, err := intakeRepository.New(c.config.DBDriver, db)
	if err != nil {
		return nil, fmt.Errorf("failed to create submission repository: %w", err)
	}
	return repo, nil
}

func (c *Container) initSubmissionUseCase() (intakeUseCase.SubmissionUseCase, error) {
	repo, err := c.SubmissionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get submission repository for submission use case: %w", err)
	}

	mailer, err := c.SubmissionMailer()
	if err != nil {
		return nil, fmt.Errorf("failed to get submission mailer for submission use case: %w", err)
	}

	baseUseCase := intakeUseCase.NewSubmissionUseCase(repo, mailer, c.Logger())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for submission use case: %w", err)
		}
		return intakeUseCase.NewSubmissionUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initSubmissionHandler() (*intakeHTTP.SubmissionHandler, error) {
	useCase, err := c.SubmissionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get submission use case for submission handler: %w", err)
	}
	maxBodyBytes := c.config.SubmitMaxBodyBytes
	if maxBodyBytes <= 0 {
		maxBodyBytes = dto.MaxRequestBytes(c.config.UploadMaxFiles)
	}
	return intakeHTTP.NewSubmissionHandler(useCase, maxBodyBytes, c.Logger()), nil
}
