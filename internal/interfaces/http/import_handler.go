package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/relief-inventory-api/internal/application/dto"
	"github.com/jhoicas/relief-inventory-api/internal/application/inventory"
	"github.com/jhoicas/relief-inventory-api/internal/infrastructure/csvrows"
)

// ImportConfig límites y valores por defecto del endpoint de importación.
type ImportConfig struct {
	MaxRows        int
	MaxUploadBytes int
	DefaultCharset string
}

// ImportHandler recibe la planilla CSV y la reconcilia contra el ledger (protegido).
type ImportHandler struct {
	uc  *inventory.ReconcileUseCase
	cfg ImportConfig
}

// NewImportHandler construye el handler.
func NewImportHandler(uc *inventory.ReconcileUseCase, cfg ImportConfig) *ImportHandler {
	return &ImportHandler{uc: uc, cfg: cfg}
}

// Import godoc
// @Summary      Importar donaciones desde CSV
// @Description  Todas las filas se aplican en una sola transacción; una salida sin stock suficiente
// @Description  revierte la importación completa. dry_run=true ejecuta las reglas sin persistir.
// @Tags         uploads
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file     formData  file    true   "Planilla CSV con cabecera"
// @Param        charset  formData  string  false  "utf-8 | latin1 | windows-1252"
// @Param        dry_run  formData  bool    false  "Simular sin persistir"
// @Success      200  {object}  dto.ImportResultDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ImportResultDTO
// @Failure      413  {object}  dto.ErrorResponse
// @Router       /api/uploads/import [post]
func (h *ImportHandler) Import(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "no se recibió el archivo (campo 'file')"})
	}
	if h.cfg.MaxUploadBytes > 0 && fh.Size > int64(h.cfg.MaxUploadBytes) {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "el archivo supera el tamaño máximo permitido"})
	}

	dryRun := false
	if raw := strings.TrimSpace(formOrQuery(c, "dry_run")); raw != "" {
		dryRun, err = strconv.ParseBool(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dry_run debe ser true o false"})
		}
	}
	charset := strings.TrimSpace(formOrQuery(c, "charset"))
	if charset == "" {
		charset = h.cfg.DefaultCharset
	}

	f, err := fh.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()

	sheet, err := csvrows.Read(f, csvrows.Options{Charset: charset, MaxRows: h.cfg.MaxRows})
	if err != nil {
		return respondError(c, err)
	}

	result, err := h.uc.Reconcile(c.Context(), sheet.Records, userID, inventory.ReconcileOptions{
		DryRun:     dryRun,
		RowNumbers: sheet.Rows,
	})
	if err != nil {
		status, _ := statusFor(err)
		if result == nil || status == fiber.StatusInternalServerError {
			return respondError(c, err)
		}
		return c.Status(status).JSON(result)
	}
	return c.JSON(result)
}

func formOrQuery(c *fiber.Ctx, key string) string {
	if v := c.FormValue(key); v != "" {
		return v
	}
	return c.Query(key)
}
