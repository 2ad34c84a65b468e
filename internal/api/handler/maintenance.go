package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/scheduler"
	"github.com/tonxmedia/adsterra-dashboard-bot/pkg/apiErrors"
)

// Tipos de job de manutenção aceitos no disparo manual.
const (
	MaintenanceJobSessionCleanup = "session-cleanup"
)

// MaintenanceServices contém os serviços agendados expostos para operação.
type MaintenanceServices struct {
	SessionCleanupService *scheduler.SessionCleanupService
}

// RunMaintenanceJob dispara manualmente um job de manutenção.
func RunMaintenanceJob(services MaintenanceServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if jobType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de job não especificado", nil)
			return
		}

		switch jobType {
		case MaintenanceJobSessionCleanup:
			if services.SessionCleanupService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de limpeza de sessões não disponível", nil)
				return
			}
			services.SessionCleanupService.TriggerManualCleanup()

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de job inválido. Valores aceitos: session-cleanup", nil)
			return
		}

		logrus.WithField("job", jobType).Info("Job de manutenção disparado manualmente")

		response := map[string]any{
			"message": "Job iniciado com sucesso",
			"type":    jobType,
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logrus.WithError(err).Warn("Erro ao responder disparo de job")
		}
	}
}

// GetMaintenanceStatus retorna o status dos jobs de manutenção.
func GetMaintenanceStatus(services MaintenanceServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{
			MaintenanceJobSessionCleanup: services.SessionCleanupService.GetStatus(),
		}

		if err := json.NewEncoder(w).Encode(status); err != nil {
			logrus.WithError(err).Warn("Erro ao responder status de manutenção")
		}
	}
}
