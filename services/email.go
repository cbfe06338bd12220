package services

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"time"

	"opina/config"
	"opina/db"
	"opina/models"
)

// EmailService sends dissatisfaction alerts to the managers subscribed to a
// survey's product type.
type EmailService struct {
	cfg *config.Config
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendDissatisfactionAlert mails every subscribed manager and logs each
// attempt. It returns how many emails went out; individual failures are
// logged and recorded, never propagated into the scoring pipeline.
func (s *EmailService) SendDissatisfactionAlert(ctx context.Context, survey *models.Survey, analysis *models.SentimentAnalysis) (int, error) {
	managers, err := db.ListManagersForProduct(ctx, survey.ProductType)
	if err != nil {
		return 0, fmt.Errorf("failed to list managers: %w", err)
	}
	if len(managers) == 0 {
		log.Printf("No managers subscribed to alerts for product %q", survey.ProductType)
		return 0, nil
	}

	subject := s.alertSubject(survey, analysis)
	body := s.alertBody(survey, analysis)

	sent := 0
	for _, manager := range managers {
		err := s.send(manager.Email, subject, body)

		entry := models.EmailLog{
			SurveyID:  survey.ID,
			Recipient: manager.Email,
			Subject:   subject,
			Sent:      err == nil,
			CreatedAt: time.Now(),
		}
		if err != nil {
			entry.Error = err.Error()
			log.Printf("Failed to send alert to %s: %v", manager.Email, err)
		} else {
			sent++
		}
		db.SaveEmailLog(ctx, entry)
	}

	log.Printf("Dissatisfaction alert for survey %s: %d/%d emails sent", survey.UUID, sent, len(managers))
	return sent, nil
}

// alertSubject grades the alert level from the analysis severity
func (s *EmailService) alertSubject(survey *models.Survey, analysis *models.SentimentAnalysis) string {
	level := "MÉDIO"
	if analysis.Sentiment == "negative" {
		level = "ALTO"
		if analysis.HybridScore <= -1 {
			level = "CRÍTICO"
		}
	}
	return fmt.Sprintf("ALERTA [%s] - Cliente Insatisfeito: %s", level, survey.ClientName)
}

func (s *EmailService) alertBody(survey *models.Survey, analysis *models.SentimentAnalysis) string {
	reason := analysis.Reason
	if reason == "" {
		reason = "Não especificado"
	}

	answeredAt := "N/A"
	if survey.AnsweredAt != nil {
		answeredAt = survey.AnsweredAt.Format("02/01/2006 15:04")
	}

	detailsLink := fmt.Sprintf("%s/dashboard/pesquisas/%s", s.cfg.Server.BaseURL, survey.ID.Hex())

	return fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif;">
  <h2>Alerta de Insatisfação</h2>
  <p>Um cliente demonstrou insatisfação com o treinamento realizado.
  É recomendado entrar em contato para resolver a situação.</p>

  <h3>Informações do Cliente</h3>
  <table border="0" cellpadding="6">
    <tr><td><strong>Cliente:</strong></td><td>%s</td></tr>
    <tr><td><strong>Código:</strong></td><td>%s</td></tr>
    <tr><td><strong>Treinamento:</strong></td><td>%s</td></tr>
    <tr><td><strong>Produto:</strong></td><td>%s</td></tr>
    <tr><td><strong>Agente Responsável:</strong></td><td>%s</td></tr>
    <tr><td><strong>Data da Resposta:</strong></td><td>%s</td></tr>
  </table>

  <h3>Análise de Sentimento</h3>
  <table border="0" cellpadding="6">
    <tr><td><strong>Sentimento:</strong></td><td>%s</td></tr>
    <tr><td><strong>Pontuação Híbrida:</strong></td><td>%d pontos</td></tr>
    <tr><td><strong>Confiança da IA:</strong></td><td>%d%%</td></tr>
    <tr><td><strong>Motivo:</strong></td><td>%s</td></tr>
  </table>

  <p><a href="%s">Ver detalhes completos</a></p>

  <p style="font-size: 12px; color: #6c757d;">
    Este email foi enviado automaticamente pelo sistema de pesquisa de satisfação.<br>
    %s
  </p>
</body>
</html>`,
		survey.ClientName, survey.ClientCode, survey.TrainingName, survey.ProductType,
		survey.AgentName, answeredAt,
		analysis.Sentiment, analysis.HybridScore, int(analysis.Confidence*100), reason,
		detailsLink,
		time.Now().Format("02/01/2006 15:04:05"))
}

// send delivers one HTML email over the configured SMTP server
func (s *EmailService) send(recipient, subject, htmlBody string) error {
	smtpCfg := s.cfg.SMTP
	auth := smtp.PlainAuth("", smtpCfg.Username, smtpCfg.Password, smtpCfg.Host)

	msg := []byte(fmt.Sprintf(
		"To: %s\r\n"+
			"From: %s <%s>\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n"+
			"%s\r\n",
		recipient, smtpCfg.SenderName, smtpCfg.SenderEmail, subject, htmlBody))

	addr := fmt.Sprintf("%s:%d", smtpCfg.Host, smtpCfg.Port)
	if err := smtp.SendMail(addr, auth, smtpCfg.SenderEmail, []string{recipient}, msg); err != nil {
		return fmt.Errorf("failed to send alert email: %w", err)
	}
	return nil
}
