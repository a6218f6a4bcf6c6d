package controller

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gridscope/transformer-asset-service/entity"
	"github.com/gridscope/transformer-asset-service/http/controller/dto"
	"github.com/gridscope/transformer-asset-service/provider"
	"github.com/gridscope/transformer-asset-service/utils"
	"gorm.io/datatypes"
)

const inspectionDateLayout = "2006-01-02"

func (ctrl *Controller) CreateInspection(c *gin.Context) {
	ctx := c.Request.Context()

	adminID, err := utils.GetAdminIDFromContext(c)
	if err != nil {
		utils.JSON401(c, "Unauthorized: admin_id not found")
		return
	}

	recordID, err := uuid.Parse(c.PostForm("transformerRecordId"))
	if err != nil {
		utils.JSON400(c, "Invalid transformerRecordId format")
		return
	}

	date, err := time.Parse(inspectionDateLayout, c.PostForm("inspectionDate"))
	if err != nil {
		utils.JSON400(c, "Invalid inspectionDate, expected YYYY-MM-DD")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.JSON400(c, "Failed to parse multipart form: "+err.Error())
		return
	}

	images, err := dto.MapMaintenanceBatch(form.File["images"])
	if err != nil {
		utils.JSON400(c, err.Error())
		return
	}

	inspection, err := ctrl.Provider.Inspection.Create(ctx, recordID, datatypes.Date(date), c.PostForm("notes"), images, adminID)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Inspection] Failed to create inspection for record %s", recordID)
		respondError(c, err)
		return
	}

	utils.JSON201(c, inspection)
}

func (ctrl *Controller) GetInspectionsByTransformerRecord(c *gin.Context) {
	ctx := c.Request.Context()

	recordID, err := uuid.Parse(c.Param("record_id"))
	if err != nil {
		utils.JSON400(c, "Invalid record id format")
		return
	}

	inspections, err := ctrl.Provider.Inspection.GetByTransformerRecord(ctx, recordID)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Inspection] Failed to list inspections for record %s", recordID)
		respondError(c, err)
		return
	}

	utils.JSON200(c, inspections)
}

func (ctrl *Controller) GetInspection(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.JSON400(c, "Invalid inspection id format")
		return
	}

	withImages := c.DefaultQuery("with_images", "true") != "false"

	inspection, err := ctrl.Provider.Inspection.GetByID(ctx, id, withImages)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.JSON200(c, inspection)
}

func (ctrl *Controller) AppendInspectionImage(c *gin.Context) {
	ctx := c.Request.Context()

	adminID, err := utils.GetAdminIDFromContext(c)
	if err != nil {
		utils.JSON401(c, "Unauthorized: admin_id not found")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.JSON400(c, "Invalid inspection id format")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.JSON400(c, "Failed to get file: "+err.Error())
		return
	}

	data, err := dto.ReadFileHeader(fileHeader)
	if err != nil {
		utils.JSON400(c, err.Error())
		return
	}

	input := provider.ImageInput{
		Data:     data,
		FileName: fileHeader.Filename,
		Type:     entity.ImageTypeMaintenance,
	}

	image, err := ctrl.Provider.Inspection.AppendImage(ctx, id, input, adminID)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Inspection] Failed to append image to inspection %s", id)
		respondError(c, err)
		return
	}

	utils.JSON201(c, image)
}

func (ctrl *Controller) DeleteInspection(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.JSON400(c, "Invalid inspection id format")
		return
	}

	if err := ctrl.Provider.Inspection.Delete(ctx, id); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Inspection] Failed to delete inspection %s", id)
		respondError(c, err)
		return
	}

	utils.JSON200(c, gin.H{"deleted": id})
}
