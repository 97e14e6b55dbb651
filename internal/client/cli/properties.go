package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/petswap/internal/client/models"
	"github.com/dmitrijs2005/petswap/internal/filex"
)

var errInvalidNumber = errors.New("invalid number")

// Properties lists every property, newest first.
func (a *App) Properties(ctx context.Context) error {
	props, err := a.api.ListProperties(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}

	if len(props) == 0 {
		printlnFn("No properties yet")
		return nil
	}

	for _, p := range props {
		printlnFn(fmt.Sprintf("%d. %s (%s, %s) by %s", p.ID, p.Title, p.City, p.Country, ownerName(p.Owner)))
	}
	return nil
}

// Property shows one property with its reviews.
func (a *App) Property(ctx context.Context) error {
	id, err := a.readID("Property ID")
	if err != nil {
		return err
	}

	p, err := a.api.GetProperty(ctx, id)
	if err != nil {
		return a.fail(ctx, err)
	}

	printlnFn(fmt.Sprintf("%s (#%d)", p.Title, p.ID))
	printlnFn("Owner:   ", ownerName(p.Owner))
	printlnFn("Address: ", strings.Join(nonEmpty(p.Address, p.City, p.Country), ", "))
	printlnFn(fmt.Sprintf("Rooms:    %d bedrooms, %d bathrooms", p.Bedrooms, p.Bathrooms))
	if p.PetsAllowed != "" {
		printlnFn("Pets:    ", p.PetsAllowed)
	}
	if p.Description != "" {
		printlnFn(p.Description)
	}
	if len(p.Images) > 0 {
		printlnFn("Images:  ", len(p.Images))
	}

	if len(p.Reviews) == 0 {
		printlnFn("No reviews")
		return nil
	}
	printlnFn("Reviews:")
	for _, r := range p.Reviews {
		printlnFn(fmt.Sprintf("  %d/5 %s: %s", r.Rating, ownerName(r.Reviewer), r.Comment))
	}
	return nil
}

// AddProperty prompts for listing details and publishes the property.
func (a *App) AddProperty(ctx context.Context) error {
	token, ok := a.token()
	if !ok {
		return nil
	}

	var in models.PropertyInput
	var err error

	if in.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if in.Title == "" {
		printlnFn("Title is required")
		return nil
	}
	if in.Description, err = getMultiline(a.reader, "Description", a.out); err != nil {
		return err
	}
	if in.Address, err = getSimpleText(a.reader, "Address", a.out); err != nil {
		return err
	}
	if in.City, err = getSimpleText(a.reader, "City", a.out); err != nil {
		return err
	}
	if in.Country, err = getSimpleText(a.reader, "Country", a.out); err != nil {
		return err
	}
	if in.Bedrooms, err = a.readCount("Bedrooms"); err != nil {
		return err
	}
	if in.Bathrooms, err = a.readCount("Bathrooms"); err != nil {
		return err
	}
	if in.PetsAllowed, err = getSimpleText(a.reader, "Pets allowed", a.out); err != nil {
		return err
	}

	p, err := a.api.CreateProperty(ctx, token, in)
	if err != nil {
		return a.fail(ctx, err)
	}

	printlnFn(fmt.Sprintf("Property created with ID %d", p.ID))
	return nil
}

// UploadImage requests a presigned URL for an owned property and uploads a
// local image file to it.
func (a *App) UploadImage(ctx context.Context) error {
	token, ok := a.token()
	if !ok {
		return nil
	}

	id, err := a.readID("Property ID")
	if err != nil {
		return err
	}

	path, err := getSimpleText(a.reader, "Image path", a.out)
	if err != nil {
		return err
	}

	data, contentType, err := filex.ReadImage(path)
	if err != nil {
		printlnFn("Cannot read image:", err)
		return err
	}

	upload, err := a.api.RequestImageUpload(ctx, token, id)
	if err != nil {
		return a.fail(ctx, err)
	}

	if err := a.api.UploadImage(ctx, upload, data, contentType); err != nil {
		return a.fail(ctx, err)
	}

	printlnFn("Image uploaded:", upload.Key)
	return nil
}

func (a *App) readID(prompt string) (int64, error) {
	s, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		printlnFn("Invalid ID:", s)
		return 0, errInvalidNumber
	}
	return id, nil
}

// readCount reads a non-negative integer. Empty input means zero.
func (a *App) readCount(prompt string) (int, error) {
	s, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return 0, err
	}
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		printlnFn("Invalid number:", s)
		return 0, errInvalidNumber
	}
	return n, nil
}

func ownerName(n *models.PersonName) string {
	if n == nil {
		return "unknown"
	}
	return strings.TrimSpace(n.FirstName + " " + n.LastName)
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
