package handler

import (
	"mime/multipart"

	"github.com/labstack/echo/v4"

	"vitrina/internal/usecase"
	"vitrina/pkg/response"
	"vitrina/pkg/utils"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
	}
}

// CreateListing accepts a multipart form: scalar fields plus "image" for the
// primary photo, repeated "images" for the gallery and "videos" for clips.
func (h *ListingHandler) CreateListing(c echo.Context) error {
	input := listingInputFrom(c)

	media, closeFiles, err := listingMediaFrom(c)
	if err != nil {
		return response.Error(c, err)
	}
	defer closeFiles()

	listing, err := h.listingUseCase.CreateListing(c.Request().Context(), input, media)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, listing)
}

// UpdateListing accepts the same multipart form as CreateListing plus
// repeated "remove_images" and "remove_videos" fields holding URLs to drop.
func (h *ListingHandler) UpdateListing(c echo.Context) error {
	id := c.Param("id")

	input := listingInputFrom(c)

	media, closeFiles, err := listingMediaFrom(c)
	if err != nil {
		return response.Error(c, err)
	}
	defer closeFiles()

	removals := usecase.MediaRemovals{
		Images: removalSet(c, "remove_images"),
		Videos: removalSet(c, "remove_videos"),
	}

	listing, err := h.listingUseCase.UpdateListing(c.Request().Context(), id, input, media, removals)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	id := c.Param("id")

	viewerID, _ := c.Get("uid").(string)

	listing, err := h.listingUseCase.GetListing(c.Request().Context(), id, viewerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) ListListings(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	viewerID, _ := c.Get("uid").(string)

	items, total, err := h.listingUseCase.ListListings(c.Request().Context(), viewerID, params.Page, params.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, items, total, params.Page, params.PageSize)
}

func (h *ListingHandler) DeleteListing(c echo.Context) error {
	id := c.Param("id")

	if err := h.listingUseCase.DeleteListing(c.Request().Context(), id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Listing deleted",
	})
}

func (h *ListingHandler) ToggleLike(c echo.Context) error {
	id := c.Param("id")
	uid, _ := c.Get("uid").(string)

	liked, err := h.listingUseCase.ToggleLike(c.Request().Context(), uid, id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{
		"liked": liked,
	})
}

func listingInputFrom(c echo.Context) usecase.ListingInput {
	return usecase.ListingInput{
		Name:         c.FormValue("name"),
		Age:          c.FormValue("age"),
		Price:        c.FormValue("price"),
		Description:  c.FormValue("description"),
		LocationsRaw: c.FormValue("locations"),
		Waist:        c.FormValue("waist"),
		Height:       c.FormValue("height"),
		Hips:         c.FormValue("hips"),
		Bust:         c.FormValue("bust"),
		Phone:        c.FormValue("phone"),
		Whatsapp:     c.FormValue("whatsapp"),
		Telegram:     c.FormValue("telegram"),
	}
}

// listingMediaFrom opens every uploaded file in the form. The returned
// closeFiles must be called after the upload finishes.
func listingMediaFrom(c echo.Context) (usecase.ListingMedia, func(), error) {
	var media usecase.ListingMedia
	var opened []multipart.File

	closeFiles := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	if fh, err := c.FormFile("image"); err == nil {
		f, err := fh.Open()
		if err != nil {
			closeFiles()
			return usecase.ListingMedia{}, func() {}, err
		}
		opened = append(opened, f)
		media.Primary = &usecase.MediaFile{
			Reader:      f,
			ContentType: fh.Header.Get("Content-Type"),
		}
	}

	form, err := c.MultipartForm()
	if err != nil {
		// Scalar-only form; nothing more to open.
		return media, closeFiles, nil
	}

	for _, fh := range form.File["images"] {
		f, err := fh.Open()
		if err != nil {
			closeFiles()
			return usecase.ListingMedia{}, func() {}, err
		}
		opened = append(opened, f)
		media.Gallery = append(media.Gallery, usecase.MediaFile{
			Reader:      f,
			ContentType: fh.Header.Get("Content-Type"),
		})
	}

	for _, fh := range form.File["videos"] {
		f, err := fh.Open()
		if err != nil {
			closeFiles()
			return usecase.ListingMedia{}, func() {}, err
		}
		opened = append(opened, f)
		media.Videos = append(media.Videos, usecase.MediaFile{
			Reader:      f,
			ContentType: fh.Header.Get("Content-Type"),
		})
	}

	return media, closeFiles, nil
}

func removalSet(c echo.Context, field string) map[string]bool {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}

	set := make(map[string]bool)
	for _, url := range form.Value[field] {
		if url != "" {
			set[url] = true
		}
	}
	return set
}
