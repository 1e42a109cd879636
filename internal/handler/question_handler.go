package handler

import (
	"io"
	"mime/multipart"

	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuestionHandler handles question-generation HTTP requests
type QuestionHandler struct {
	service          domain.QuestionGenerationService
	fileField        string
	instructionField string
}

// NewQuestionHandler creates a new QuestionHandler instance
func NewQuestionHandler(service domain.QuestionGenerationService, uploadCfg config.UploadConfig) *QuestionHandler {
	return &QuestionHandler{
		service:          service,
		fileField:        uploadCfg.FileField,
		instructionField: uploadCfg.InstructionField,
	}
}

// GenerateQuestions godoc
// @Summary Generate multiple-choice questions
// @Description Reads a JSON knowledge base ({"topicos": [{"titulo", "conteudo"}]}) and an instruction, and returns the questions produced by the language model.
// @Tags questions
// @Accept multipart/form-data
// @Produce json
// @Param arquivo formData file true "Knowledge base (application/json)"
// @Param prompt formData string true "Instruction for the question generator"
// @Success 200 {object} dto.GenerateQuestionsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security ApiKeyAuth
// @Router /gerar [post]
func (h *QuestionHandler) GenerateQuestions(c *fiber.Ctx) error {
	req := &domain.UploadRequest{
		RequestID: requestID(c),
		Identity:  middleware.UserIDFromContext(c),
	}

	// The multipart body is only parsed for an authenticated caller; the
	// pipeline rejects the anonymous request before looking at any field.
	if req.Authenticated() {
		h.bindUpload(c, req)
	}

	questions, err := h.service.Generate(c.UserContext(), req)
	if err != nil {
		return err // rendered by middleware.ErrorHandler
	}

	if questions == nil {
		questions = domain.QuestionSet{}
	}
	return c.JSON(dto.GenerateQuestionsResponse{Questoes: questions})
}

func (h *QuestionHandler) bindUpload(c *fiber.Ctx, req *domain.UploadRequest) {
	req.Instruction = c.FormValue(h.instructionField)

	fileHeader, err := c.FormFile(h.fileField)
	if err != nil {
		logger.Get().Debug("No uploaded file in request",
			zap.String("request_id", req.RequestID),
			zap.String("field", h.fileField),
			zap.Error(err))
		return
	}
	req.File = &multipartUpload{header: fileHeader}
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}

// multipartUpload adapts a multipart file part to domain.UploadedFile.
type multipartUpload struct {
	header *multipart.FileHeader
}

func (u *multipartUpload) Filename() string {
	return u.header.Filename
}

func (u *multipartUpload) ContentType() string {
	return u.header.Header.Get(fiber.HeaderContentType)
}

func (u *multipartUpload) Size() int64 {
	return u.header.Size
}

func (u *multipartUpload) Open() (io.ReadCloser, error) {
	return u.header.Open()
}
