package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Cordeleria-api/internal/application/dto"
	"github.com/jhoicas/Cordeleria-api/internal/domain"
	"github.com/jhoicas/Cordeleria-api/pkg/logger"
)

// CodeInternal código para fallos no previstos; el detalle sólo va al log.
const CodeInternal = "INTERNAL"

// StatusForKind estado HTTP de cada tipo de error de negocio.
func StatusForKind(kind domain.Kind) int {
	switch kind {
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindInvalidLine:
		return fiber.StatusUnprocessableEntity
	case domain.KindAlreadyFulfilled:
		return fiber.StatusConflict
	case domain.KindOverDelivery:
		return fiber.StatusConflict
	case domain.KindNoEffectivePrice:
		return fiber.StatusUnprocessableEntity
	case domain.KindInsufficientStock:
		return fiber.StatusConflict
	case domain.KindInvalidComposition:
		return fiber.StatusUnprocessableEntity
	case domain.KindZoneRejected:
		return fiber.StatusUnprocessableEntity
	case domain.KindInvalidInput:
		return fiber.StatusBadRequest
	case domain.KindConflict:
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

// writeError traduce err a la respuesta HTTP. Los errores de negocio no se registran
// como fallos; el resto se registra y se responde con un mensaje genérico.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	kind := domain.KindOf(err)
	if kind == "" {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: CodeInternal, Message: "error interno, intente nuevamente"})
	}
	resp := dto.ErrorResponse{Code: string(kind), Message: err.Error()}
	var de *domain.Error
	if errors.As(err, &de) {
		resp.Message = de.Message
		resp.Outstanding = de.Outstanding
	}
	log.Debug().Str("code", resp.Code).Str("path", c.Path()).Msg(resp.Message)
	return c.Status(StatusForKind(kind)).JSON(resp)
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: message})
}
