package usecase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/duke-colab/bluebook/pkg/domain/model"
	"github.com/duke-colab/bluebook/pkg/domain/types"
)

// The widgets API buries most fields in a loosely shaped "attributes" bag
// whose keys vary by item type. Projection reads it with gjson paths and
// treats every missing key as empty.

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

func projectPublication(item gjson.Result) model.ScholarPublication {
	return model.ScholarPublication{
		Title:           item.Get("label").String(),
		Authors:         splitAuthors(item.Get("attributes.authorList").String()),
		Journal:         item.Get("attributes.publishedIn").String(),
		Year:            yearOf(item.Get("attributes.year").String()),
		Citation:        citationOf(item),
		URL:             item.Get("uri").String(),
		PublicationType: lastURISegment(item.Get("vivoType").String()),
	}
}

func projectGrant(item gjson.Result) model.ScholarGrant {
	return model.ScholarGrant{
		Title:          item.Get("label").String(),
		AwardedBy:      item.Get("attributes.awardedBy").String(),
		Role:           item.Get("attributes.roleName").String(),
		StartDate:      formatDate(item.Get("attributes.startDate").String()),
		EndDate:        formatDate(item.Get("attributes.endDate").String()),
		AdministeredBy: item.Get("attributes.administeredBy").String(),
	}
}

func projectScholarDetails(duid types.DUID, item gjson.Result) *model.ScholarDetails {
	attrs := item.Get("attributes")

	var interests []string
	for _, area := range item.Get("researchAreas").Array() {
		if label := area.Get("label").String(); label != "" {
			interests = append(interests, label)
		}
	}

	var education []model.ScholarEducation
	for _, edu := range item.Get("educations").Array() {
		eduAttrs := edu.Get("attributes")
		degree := eduAttrs.Get("degree").String()
		institution := eduAttrs.Get("institution.label").String()
		year := yearOf(trimTimeSuffix(eduAttrs.Get("endDate").String()))

		description := fmt.Sprintf("%s %s", degree, institution)
		if year != "" {
			description += fmt.Sprintf(" (%s)", year)
		}
		education = append(education, model.ScholarEducation{
			Degree:      degree,
			Institution: institution,
			Year:        year,
			Description: description,
		})
	}

	return &model.ScholarDetails{
		DUID:              string(duid),
		Name:              attrs.Get("name").String(),
		Title:             attrs.Get("preferredTitle").String(),
		Overview:          attrs.Get("overview").String(),
		Department:        item.Get("departments.0.label").String(),
		Email:             attrs.Get("primaryEmail").String(),
		Phone:             attrs.Get("phone").String(),
		Office:            officeOf(item),
		ResearchInterests: interests,
		Education:         education,
		ProfileURL:        item.Get("uri").String(),
		ImageURL:          attrs.Get("imageUri").String(),
	}
}

// splitAuthors splits the upstream author list on ";" and trims each
// entry. Empty entries survive, matching the upstream list shape.
func splitAuthors(list string) []string {
	if list == "" {
		return nil
	}
	parts := strings.Split(list, ";")
	authors := make([]string, 0, len(parts))
	for _, p := range parts {
		authors = append(authors, strings.TrimSpace(p))
	}
	return authors
}

// yearOf reduces an ISO date to its year
func yearOf(date string) string {
	if i := strings.Index(date, "-"); i >= 0 {
		return date[:i]
	}
	return date
}

// citationOf picks the first available citation style and strips HTML
func citationOf(item gjson.Result) string {
	citation := item.Get("attributes.apaCitation").String()
	if citation == "" {
		citation = item.Get("attributes.chicagoCitation").String()
	}
	if citation == "" {
		citation = item.Get("attributes.mlaCitation").String()
	}
	return htmlTagPattern.ReplaceAllString(citation, "")
}

func lastURISegment(uri string) string {
	if uri == "" {
		return ""
	}
	parts := strings.Split(uri, "/")
	return parts[len(parts)-1]
}

// officeOf reads the office location attribute, falling back to the
// address record flagged as the work location.
func officeOf(item gjson.Result) string {
	if office := item.Get("attributes.officeLocation").String(); office != "" {
		return office
	}
	for _, address := range item.Get("addresses").Array() {
		if strings.Contains(address.Get("uri").String(), "work_location") {
			return address.Get("label").String()
		}
	}
	return ""
}

func trimTimeSuffix(date string) string {
	if i := strings.Index(date, "T"); i >= 0 {
		return date[:i]
	}
	return date
}

// formatDate renders an ISO date as "April 5, 2025". A time component
// after "T" is discarded first. Anything that does not split into a
// plausible year-month-day is passed through unchanged.
func formatDate(raw string) string {
	if raw == "" {
		return ""
	}
	raw = trimTimeSuffix(raw)

	parts := strings.SplitN(raw, "-", 3)
	if len(parts) != 3 {
		return raw
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return raw
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return raw
	}
	return fmt.Sprintf("%s %d, %s", monthNames[month-1], day, parts[0])
}
