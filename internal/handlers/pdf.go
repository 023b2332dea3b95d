// internal/handlers/pdf.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/services"
	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/utils"
)

// pdfFormField is the multipart field carrying the document.
const pdfFormField = "pdf"

type PDFHandler struct {
	pdfService *services.PDFService
}

func NewPDFHandler(pdfService *services.PDFService) *PDFHandler {
	return &PDFHandler{
		pdfService: pdfService,
	}
}

// POST /pdfs
func (h *PDFHandler) UploadPDF(c *gin.Context) error {
	pdf, err := h.pdfService.UploadPDF(c.Request.Context(), formFile(c))
	if err != nil {
		return err
	}

	utils.CreatedResponse(c, pdf, "PDF uploaded successfully")
	return nil
}

// GET /pdfs
func (h *PDFHandler) GetAllPDFs(c *gin.Context) error {
	pdfs, err := h.pdfService.GetAllPDFs(c.Request.Context())
	if err != nil {
		return err
	}

	utils.SuccessResponse(c, pdfs, "All PDFs retrieved successfully")
	return nil
}

// GET /pdfs/:id
func (h *PDFHandler) GetPDFByID(c *gin.Context) error {
	pdf, err := h.pdfService.GetPDFByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		return err
	}

	utils.SuccessResponse(c, pdf, "PDF retrieved successfully")
	return nil
}

// PUT /pdfs/:id
func (h *PDFHandler) UpdatePDF(c *gin.Context) error {
	pdf, err := h.pdfService.UpdatePDF(c.Request.Context(), c.Param("id"), formFile(c))
	if err != nil {
		return err
	}

	utils.SuccessResponse(c, pdf, "PDF updated successfully")
	return nil
}

// DELETE /pdfs/:id
func (h *PDFHandler) DeletePDF(c *gin.Context) error {
	if err := h.pdfService.DeletePDF(c.Request.Context(), c.Param("id")); err != nil {
		return err
	}

	utils.SuccessResponse(c, nil, "PDF deleted successfully")
	return nil
}

// formFile returns nil when the request carries no attachment.
func formFile(c *gin.Context) *services.UploadFile {
	header, err := c.FormFile(pdfFormField)
	if err != nil {
		return nil
	}
	return services.FileFromHeader(header)
}
