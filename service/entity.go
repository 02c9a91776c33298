package service

import (
	"errors"
	"net/http"
	"strconv"

	"dcim/audit"
	"dcim/cache"
	"dcim/dao/model"
	"dcim/dao/query"
	"dcim/entities"
	"dcim/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AddEntityReq is the JSON body for single-entity creation. Field names
// mirror the canonical upload column names.
type AddEntityReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Address     string `json:"address"`

	LocationName   string `json:"location_name"`
	BuildingName   string `json:"building_name"`
	WingName       string `json:"wing_name"`
	FloorName      string `json:"floor_name"`
	DatacenterName string `json:"datacenter_name"`
	RackName       string `json:"rack_name"`

	MakeName        string `json:"make_name"`
	DeviceTypeName  string `json:"devicetype_name"`
	ModelName       string `json:"model_name"`
	AssetOwnerName  string `json:"asset_owner_name"`
	ApplicationName string `json:"application_name"`

	Height        *int `json:"height"`
	Position      *int `json:"position"`
	SpaceRequired *int `json:"space_required"`

	Face              string `json:"face"`
	Status            string `json:"status"`
	IP                string `json:"ip"`
	SerialNumber      string `json:"serial_number"`
	WarrantyStartDate string `json:"warranty_start_date"`
	WarrantyEndDate   string `json:"warranty_end_date"`
}

func (r *AddEntityReq) fields(kind model.EntityType) *entities.Fields {
	return &entities.Fields{
		Kind:              kind,
		Name:              r.Name,
		Description:       r.Description,
		Address:           r.Address,
		LocationName:      r.LocationName,
		BuildingName:      r.BuildingName,
		WingName:          r.WingName,
		FloorName:         r.FloorName,
		DatacenterName:    r.DatacenterName,
		RackName:          r.RackName,
		MakeName:          r.MakeName,
		DeviceTypeName:    r.DeviceTypeName,
		ModelName:         r.ModelName,
		AssetOwnerName:    r.AssetOwnerName,
		ApplicationName:   r.ApplicationName,
		Height:            r.Height,
		Position:          r.Position,
		SpaceRequired:     r.SpaceRequired,
		Face:              r.Face,
		Status:            r.Status,
		IP:                r.IP,
		SerialNumber:      r.SerialNumber,
		WarrantyStartDate: r.WarrantyStartDate,
		WarrantyEndDate:   r.WarrantyEndDate,
	}
}

func RegisterEntity(g *gin.RouterGroup) {
	g.GET("/summary", GetSummary)
	g.GET("/:entity", ListEntity)
	g.POST("/:entity", AddEntity)
	g.DELETE("/devices/:id", DeleteDevice)
}

func entityParam(c *gin.Context) (model.EntityType, bool) {
	kind := model.EntityType(c.Param("entity"))
	for _, known := range model.AllEntityTypes {
		if kind == known {
			return kind, true
		}
	}
	response.HTTPError(c, http.StatusNotFound,
		"unknown entity type '"+string(kind)+"'", response.InvalidRequest)
	return "", false
}

func ListEntity(c *gin.Context) {
	kind, ok := entityParam(c)
	if !ok {
		return
	}
	key := cache.ListingKey(kind)
	if cached, hit := store.Get(key); hit {
		response.Success(c, cached)
		return
	}
	out, err := query.ListEntities(query.DB, kind)
	if err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	store.Set(key, out)
	response.Success(c, out)
}

func GetSummary(c *gin.Context) {
	if cached, hit := store.Get(cache.SummaryKey()); hit {
		response.Success(c, cached)
		return
	}
	summary, err := query.CountSummary(query.DB)
	if err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	store.Set(cache.SummaryKey(), summary)
	response.Success(c, summary)
}

func AddEntity(c *gin.Context) {
	kind, ok := entityParam(c)
	if !ok {
		return
	}
	var req AddEntityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	f := req.fields(kind)

	handler, ok := pipeline.Handlers.Create(kind)
	if !ok {
		response.HTTPError(c, http.StatusNotFound,
			"unknown entity type '"+string(kind)+"'", response.InvalidRequest)
		return
	}
	if err := pipeline.Schemas.Validate(f); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	user := currentUser(c)
	var record entities.Record
	err := query.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		record, err = handler(tx, f)
		if err != nil {
			return err
		}
		return audit.LogCreate(tx, user.Username, kind, record.ID(), record)
	})
	if err != nil {
		var conflict *entities.ConflictError
		var missing *entities.NotFoundError
		switch {
		case errors.As(err, &conflict):
			response.HTTPError(c, http.StatusConflict, conflict.Message, response.EntityConflict)
		case errors.As(err, &missing):
			response.HTTPError(c, http.StatusNotFound, missing.Message, response.InvalidRequest)
		case errors.Is(err, gorm.ErrDuplicatedKey):
			response.HTTPError(c, http.StatusConflict, "Duplicate data", response.EntityConflict)
		default:
			response.BadRequestError(c, err.Error())
		}
		return
	}
	store.InvalidateListing(kind)
	response.Success(c, record)
}

func DeleteDevice(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequestError(c, "invalid device id")
		return
	}
	user := currentUser(c)
	var record entities.Record
	err = query.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		record, err = entities.DeleteDevice(tx, uint(id))
		if err != nil {
			return err
		}
		return audit.LogDelete(tx, user.Username, model.EntityDevices, record.ID(), record)
	})
	if err != nil {
		var missing *entities.NotFoundError
		if errors.As(err, &missing) {
			response.HTTPError(c, http.StatusNotFound, missing.Message, response.InvalidRequest)
		} else {
			response.Error(c, err.Error(), response.NotSpecified)
		}
		return
	}
	store.InvalidateListing(model.EntityDevices)
	store.InvalidateListing(model.EntityRacks)
	response.Success(c, record)
}
