package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest"
)

// prDraft holds the create form bindings. It lives behind a pointer so copies of the model share it.
type prDraft struct {
	requesterID     string
	organization    string
	needDate        string
	priority        purchaserequest.Priority
	fundingSourceID string
	justification   string

	description   string
	quantity      string
	unitPrice     string
	unitOfMeasure string
	category      purchaserequest.ItemCategory
	vendor        string
}

func newDraft(users []*purchaserequest.UserReference) *prDraft {
	d := &prDraft{
		needDate:      time.Now().AddDate(0, 1, 0).Format(time.DateOnly),
		priority:      purchaserequest.PriorityMedium,
		quantity:      "1",
		unitOfMeasure: "each",
		category:      purchaserequest.CategoryOfficeSupplies,
	}

	for _, u := range users {
		if u.ID == operator.ID {
			d.requesterID = u.ID
			d.organization = u.Organization
		}
	}

	return d
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}

		return nil
	}
}

func validDate(s string) error {
	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
		return errors.New("use YYYY-MM-DD")
	}

	return nil
}

func positiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return errors.New("must be a whole number of at least 1")
	}

	return nil
}

func positiveAmount(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !d.IsPositive() {
		return errors.New("must be a positive amount")
	}

	return nil
}

func buildCreateForm(d *prDraft, users []*purchaserequest.UserReference, sources []*purchaserequest.FundingSource) *huh.Form {
	userOpts := make([]huh.Option[string], len(users))
	for i, u := range users {
		userOpts[i] = huh.NewOption(fmt.Sprintf("%s (%s)", u.Name, u.Organization), u.ID)
	}

	sourceOpts := make([]huh.Option[string], len(sources))
	for i, s := range sources {
		sourceOpts[i] = huh.NewOption(fmt.Sprintf("%s - %s", s.Code, s.Name), s.ID)
	}

	priorityOpts := []huh.Option[purchaserequest.Priority]{
		huh.NewOption("Low", purchaserequest.PriorityLow),
		huh.NewOption("Medium", purchaserequest.PriorityMedium),
		huh.NewOption("High", purchaserequest.PriorityHigh),
		huh.NewOption("Urgent", purchaserequest.PriorityUrgent),
	}

	categoryOpts := make([]huh.Option[purchaserequest.ItemCategory], len(purchaserequest.Categories))
	for i, c := range purchaserequest.Categories {
		categoryOpts[i] = huh.NewOption(strings.ReplaceAll(string(c), "_", " "), c)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Requester").Options(userOpts...).Value(&d.requesterID),
			huh.NewInput().Title("Organization").Value(&d.organization).Validate(notBlank("organization")),
			huh.NewInput().Title("Need Date").Placeholder("YYYY-MM-DD").Value(&d.needDate).Validate(validDate),
			huh.NewSelect[purchaserequest.Priority]().Title("Priority").Options(priorityOpts...).Value(&d.priority),
			huh.NewSelect[string]().Title("Funding Source").Options(sourceOpts...).Value(&d.fundingSourceID),
			huh.NewText().Title("Justification").Value(&d.justification),
		).Title("Purchase Request"),
		huh.NewGroup(
			huh.NewInput().Title("Description").Value(&d.description).Validate(notBlank("description")),
			huh.NewInput().Title("Quantity").Value(&d.quantity).Validate(positiveInt),
			huh.NewInput().Title("Unit Price").Placeholder("0.00").Value(&d.unitPrice).Validate(positiveAmount),
			huh.NewInput().Title("Unit of Measure").Value(&d.unitOfMeasure),
			huh.NewSelect[purchaserequest.ItemCategory]().Title("Category").Options(categoryOpts...).Value(&d.category),
			huh.NewInput().Title("Vendor").Placeholder("optional").Value(&d.vendor),
		).Title("Line Item"),
	).WithWidth(60).WithShowHelp(false)
}

// params converts a completed draft. The form validators guarantee the numeric fields parse.
func (d *prDraft) params() (purchaserequest.CreateParams, error) {
	needDate, err := time.Parse(time.DateOnly, strings.TrimSpace(d.needDate))
	if err != nil {
		return purchaserequest.CreateParams{}, fmt.Errorf("need date: %w", err)
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(d.quantity))
	if err != nil {
		return purchaserequest.CreateParams{}, fmt.Errorf("quantity: %w", err)
	}

	unitPrice, err := decimal.NewFromString(strings.TrimSpace(d.unitPrice))
	if err != nil {
		return purchaserequest.CreateParams{}, fmt.Errorf("unit price: %w", err)
	}

	return purchaserequest.CreateParams{
		RequesterID:     d.requesterID,
		Organization:    strings.TrimSpace(d.organization),
		NeedDate:        needDate,
		Justification:   strings.TrimSpace(d.justification),
		Priority:        d.priority,
		FundingSourceID: d.fundingSourceID,
		LineItems: []purchaserequest.LineItemParams{{
			Description:   strings.TrimSpace(d.description),
			Quantity:      quantity,
			UnitPrice:     unitPrice,
			UnitOfMeasure: strings.TrimSpace(d.unitOfMeasure),
			Vendor:        strings.TrimSpace(d.vendor),
			Category:      d.category,
		}},
	}, nil
}
