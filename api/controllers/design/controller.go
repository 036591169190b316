package design_controller

import designmodel "github.com/HermawanSutanto/sertifikat-lokal2/api/model/designModel"

// DesignController handles saved layer layouts
type DesignController struct {
	designRepo     designmodel.IDesignRepository
	templateBucket string
}

func NewDesignController(designRepo designmodel.IDesignRepository, templateBucket string) *DesignController {
	return &DesignController{
		designRepo:     designRepo,
		templateBucket: templateBucket,
	}
}
