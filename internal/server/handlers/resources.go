package handlers

import "github.com/shipdesk/backoffice/internal/domain/models"

// The four back-office collections.
var (
	ExpressResource = Resource{
		Path:            "express",
		NotFoundMessage: "快递记录不存在",
		DeletedMessage:  "快递记录已删除",
		Sheet:           "Express",
		Headers:         models.ExpressExportHeaders,
	}
	ExceptionResource = Resource{
		Path:            "exceptions",
		NotFoundMessage: "异常记录不存在",
		DeletedMessage:  "异常记录已删除",
		Sheet:           "Exceptions",
		Headers:         models.ExceptionExportHeaders,
	}
	ContainerResource = Resource{
		Path:            "containers",
		NotFoundMessage: "集装箱记录不存在",
		DeletedMessage:  "集装箱记录已删除",
		Sheet:           "Containers",
		Headers:         models.ContainerExportHeaders,
	}
	InventoryResource = Resource{
		Path:            "inventory",
		NotFoundMessage: "库存异常记录不存在",
		DeletedMessage:  "库存异常记录已删除",
		Sheet:           "Inventory",
		Headers:         models.InventoryExportHeaders,
	}
)
