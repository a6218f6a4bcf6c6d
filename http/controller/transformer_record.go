package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gridscope/transformer-asset-service/http/controller/dto"
	"github.com/gridscope/transformer-asset-service/provider"
	"github.com/gridscope/transformer-asset-service/utils"
)

func (ctrl *Controller) CreateTransformerRecord(c *gin.Context) {
	ctx := c.Request.Context()

	adminID, err := utils.GetAdminIDFromContext(c)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[TransformerRecord] admin_id not found in context")
		utils.JSON401(c, "Unauthorized: admin_id not found")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.JSON400(c, "Failed to parse multipart form: "+err.Error())
		return
	}

	locationLat, err := strconv.ParseFloat(c.PostForm("locationLat"), 64)
	if err != nil {
		utils.JSON400(c, "Invalid locationLat")
		return
	}
	locationLng, err := strconv.ParseFloat(c.PostForm("locationLng"), 64)
	if err != nil {
		utils.JSON400(c, "Invalid locationLng")
		return
	}

	input := provider.TransformerRecordInput{
		Name:         c.PostForm("name"),
		LocationName: c.PostForm("locationName"),
		LocationLat:  locationLat,
		LocationLng:  locationLng,
		Capacity:     c.PostForm("capacity"),
	}

	images, err := dto.MapImageBatch(form.File["images"], form.Value["types"], form.Value["weatherConditions"])
	if err != nil {
		utils.JSON400(c, err.Error())
		return
	}

	record, err := ctrl.Provider.TransformerRecord.Create(ctx, input, images, adminID)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[TransformerRecord] Failed to create record")
		respondError(c, err)
		return
	}

	utils.JSON201(c, record)
}

func (ctrl *Controller) ListTransformerRecords(c *gin.Context) {
	ctx := c.Request.Context()

	records, err := ctrl.Provider.TransformerRecord.List(ctx)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[TransformerRecord] Failed to list records")
		respondError(c, err)
		return
	}

	utils.JSON200(c, records)
}

func (ctrl *Controller) GetTransformerRecord(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.JSON400(c, "Invalid record id format")
		return
	}

	record, err := ctrl.Provider.TransformerRecord.GetByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.JSON200(c, record)
}

func (ctrl *Controller) UpdateTransformerRecord(c *gin.Context) {
	ctx := c.Request.Context()

	adminID, err := utils.GetAdminIDFromContext(c)
	if err != nil {
		utils.JSON401(c, "Unauthorized: admin_id not found")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.JSON400(c, "Invalid record id format")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.JSON400(c, "Failed to parse multipart form: "+err.Error())
		return
	}

	// Absent form fields stay unchanged; only submitted values patch.
	var patch provider.TransformerRecordPatch
	if vals := form.Value["name"]; len(vals) > 0 {
		patch.Name = &vals[0]
	}
	if vals := form.Value["locationName"]; len(vals) > 0 {
		patch.LocationName = &vals[0]
	}
	if vals := form.Value["locationLat"]; len(vals) > 0 {
		lat, err := strconv.ParseFloat(vals[0], 64)
		if err != nil {
			utils.JSON400(c, "Invalid locationLat")
			return
		}
		patch.LocationLat = &lat
	}
	if vals := form.Value["locationLng"]; len(vals) > 0 {
		lng, err := strconv.ParseFloat(vals[0], 64)
		if err != nil {
			utils.JSON400(c, "Invalid locationLng")
			return
		}
		patch.LocationLng = &lng
	}
	if vals := form.Value["capacity"]; len(vals) > 0 {
		patch.Capacity = &vals[0]
	}

	images, err := dto.MapImageBatch(form.File["images"], form.Value["types"], form.Value["weatherConditions"])
	if err != nil {
		utils.JSON400(c, err.Error())
		return
	}

	record, err := ctrl.Provider.TransformerRecord.Update(ctx, id, patch, images, adminID)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[TransformerRecord] Failed to update record %s", id)
		respondError(c, err)
		return
	}

	utils.JSON200(c, record)
}

func (ctrl *Controller) DeleteTransformerRecord(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.JSON400(c, "Invalid record id format")
		return
	}

	if err := ctrl.Provider.TransformerRecord.Delete(ctx, id); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[TransformerRecord] Failed to delete record %s", id)
		respondError(c, err)
		return
	}

	utils.JSON200(c, gin.H{"deleted": id})
}

func (ctrl *Controller) DeleteImage(c *gin.Context) {
	ctx := c.Request.Context()

	imageID, err := uuid.Parse(c.Param("image_id"))
	if err != nil {
		utils.JSON400(c, "Invalid image id format")
		return
	}

	if err := ctrl.Provider.TransformerRecord.DeleteImage(ctx, imageID); err != nil {
		respondError(c, err)
		return
	}

	utils.JSON200(c, gin.H{"deleted": imageID})
}
