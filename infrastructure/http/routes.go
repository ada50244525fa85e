package http

import (
	"batchcount/frontend/batches"
	"batchcount/frontend/counting"
	"batchcount/frontend/sheet"
	"batchcount/frontend/summary"
)

// RegisterTabRoutes wires the four tab feature handlers.
func (s *Server) RegisterTabRoutes() {
	countingHandler := counting.NewHandler(s.Items, s.Batches)
	s.router.Get("/counting", countingHandler.PageHandler())
	s.router.Post("/counting/add", countingHandler.AddHandler())
	s.router.Post("/counting/edit", countingHandler.EditHandler())
	s.router.Post("/counting/save", countingHandler.SaveHandler())
	s.router.Post("/counting/cancel", countingHandler.CancelHandler())
	s.router.Post("/counting/delete", countingHandler.DeleteHandler())
	s.router.Post("/counting/clear", countingHandler.ClearHandler())

	batchesHandler := batches.NewHandler(s.Batches, s.Items)
	s.router.Get("/batches", batchesHandler.PageHandler())
	s.router.Post("/batches/add", batchesHandler.AddHandler())
	s.router.Post("/batches/edit", batchesHandler.EditHandler())
	s.router.Post("/batches/save", batchesHandler.SaveHandler())
	s.router.Post("/batches/cancel", batchesHandler.CancelHandler())
	s.router.Post("/batches/delete", batchesHandler.DeleteHandler())
	s.router.Post("/batches/import", batchesHandler.ImportHandler())
	s.router.Get("/batches/export", batchesHandler.ExportHandler())
	s.router.Post("/batches/clear", batchesHandler.ClearHandler())

	summaryHandler := summary.NewHandler(s.Items, s.Batches)
	s.router.Get("/summary", summaryHandler.PageHandler())

	sheetHandler := sheet.NewHandler(s.Items, s.Batches)
	s.router.Get("/sheet", sheetHandler.PageHandler())
	s.router.Get("/sheet/csv", sheetHandler.CSVHandler())
	s.router.Get("/sheet/pdf", sheetHandler.CountingSheetHandler())
	s.router.Get("/sheet/labels", sheetHandler.LabelsHandler())
}
