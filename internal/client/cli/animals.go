package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/farmily/farmily/internal/client/models"
	"github.com/farmily/farmily/internal/common"
)

func animalTypeOptions() []string {
	out := make([]string, len(models.AnimalTypes))
	for i, t := range models.AnimalTypes {
		out[i] = string(t)
	}
	return out
}

func healthOptions() []string {
	out := make([]string, len(models.HealthStatuses))
	for i, h := range models.HealthStatuses {
		out[i] = string(h)
	}
	return out
}

func indexOf(options []string, v string) int {
	for i, o := range options {
		if o == v {
			return i
		}
	}
	return 0
}

// inputAnimal prompts for every editable field, offering the values of cur
// as defaults.
func (a *App) inputAnimal(cur models.Animal) (models.Animal, error) {
	out := cur

	name, err := GetOptionalText(a.reader, "Name", cur.Name, a.out)
	if err != nil {
		return out, err
	}
	out.Name = name

	typeOpts := animalTypeOptions()
	def := indexOf(typeOpts, string(cur.Type))
	i, err := GetChoice(a.reader, "Type", typeOpts, def, a.out)
	if err != nil {
		return out, err
	}
	out.Type = models.AnimalTypes[i]

	breed, err := GetOptionalText(a.reader, "Breed (optional)", cur.Breed, a.out)
	if err != nil {
		return out, err
	}
	out.Breed = breed

	for {
		s, err := GetOptionalText(a.reader, "Birth date YYYY-MM-DD (optional, - to clear)", formatDate(cur.BirthDate), a.out)
		if err != nil {
			return out, err
		}
		d, perr := parseDate(s)
		if perr == nil {
			out.BirthDate = d
			break
		}
		a.println(perr.Error())
	}

	for {
		s, err := GetOptionalText(a.reader, "Weight, kg (optional)", formatWeight(cur.Weight), a.out)
		if err != nil {
			return out, err
		}
		v, perr := parseWeight(s)
		if perr == nil {
			out.Weight = v
			break
		}
		a.println(perr.Error())
	}

	healthOpts := healthOptions()
	def = indexOf(healthOpts, string(cur.HealthStatus))
	if cur.HealthStatus == "" {
		def = indexOf(healthOpts, string(models.HealthGood))
	}
	i, err = GetChoice(a.reader, "Health", healthOpts, def, a.out)
	if err != nil {
		return out, err
	}
	out.HealthStatus = models.HealthStatuses[i]

	notes, err := GetOptionalText(a.reader, "Notes (optional)", cur.Notes, a.out)
	if err != nil {
		return out, err
	}
	out.Notes = notes

	return out, nil
}

// Add creates a new animal record.
func (a *App) Add(ctx context.Context) error {
	in, err := a.inputAnimal(models.Animal{})
	if err != nil {
		return a.fail(ctx, "add", err)
	}
	saved, err := a.animals.Add(ctx, in)
	if err != nil {
		return a.fail(ctx, "add", err)
	}
	a.printf("Added %s (%s)\n", saved.Name, saved.ID)
	return nil
}

// Edit updates an existing record; empty answers keep the stored values.
func (a *App) Edit(ctx context.Context) error {
	cur, err := a.lookup(ctx, "Enter record id to edit")
	if err != nil {
		return a.fail(ctx, "edit", err)
	}
	in, err := a.inputAnimal(*cur)
	if err != nil {
		return a.fail(ctx, "edit", err)
	}
	saved, err := a.animals.Update(ctx, in)
	if err != nil {
		return a.fail(ctx, "edit", err)
	}
	a.printf("Updated %s\n", saved.Name)
	return nil
}

// Delete removes a record after confirmation.
func (a *App) Delete(ctx context.Context) error {
	cur, err := a.lookup(ctx, "Enter record id to delete")
	if err != nil {
		return a.fail(ctx, "delete", err)
	}
	ok, err := GetSimpleText(a.reader, fmt.Sprintf("Delete %s? (y/N)", cur.Name), a.out)
	if err != nil {
		return a.fail(ctx, "delete", err)
	}
	if !strings.EqualFold(ok, "y") && !strings.EqualFold(ok, "yes") {
		a.println("Cancelled")
		return nil
	}
	if err := a.animals.Delete(ctx, cur.ID); err != nil {
		return a.fail(ctx, "delete", err)
	}
	a.printf("Deleted %s\n", cur.Name)
	return nil
}

// lookup asks for an id and loads the record.
func (a *App) lookup(ctx context.Context, prompt string) (*models.Animal, error) {
	id, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", common.ErrValidation)
	}
	cur, err := a.animals.Get(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("%w: no animal with id %s", common.ErrNotFound, id)
	}
	return cur, err
}

// List prints the herd newest first.
func (a *App) List(ctx context.Context) error {
	herd, err := a.animals.List(ctx)
	if err != nil {
		return a.fail(ctx, "list", err)
	}
	p := a.palette()
	if len(herd) == 0 {
		a.println(p.muted.Render("The herd is empty. Use 'add' to create a record."))
		return nil
	}

	col := func(w int) lipgloss.Style { return lipgloss.NewStyle().Width(w).MaxWidth(w) }
	row := func(id, name, typ, breed, weight, health string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			col(38).Render(id), col(18).Render(name), col(9).Render(typ),
			col(14).Render(breed), col(9).Render(weight), health)
	}

	a.println(p.accent.Render(row("ID", "NAME", "TYPE", "BREED", "KG", "HEALTH")))
	for _, an := range herd {
		a.println(p.text.Render(row(an.ID, truncate(an.Name, 17), string(an.Type),
			truncate(an.Breed, 13), formatWeight(an.Weight), string(an.HealthStatus))))
	}
	return nil
}

// Show prints every field of one record.
func (a *App) Show(ctx context.Context) error {
	an, err := a.lookup(ctx, "Enter record id to show")
	if err != nil {
		return a.fail(ctx, "show", err)
	}
	p := a.palette()
	field := func(label, v string) {
		if v == "" {
			v = p.muted.Render("-")
		}
		a.printf("%s %s\n", p.muted.Render(fmt.Sprintf("%-11s", label+":")), v)
	}

	a.println(p.accent.Render(an.Name))
	field("ID", an.ID)
	field("Type", string(an.Type))
	field("Breed", an.Breed)
	field("Born", formatDate(an.BirthDate))
	field("Weight, kg", formatWeight(an.Weight))
	field("Health", string(an.HealthStatus))
	field("Notes", an.Notes)
	field("Created", an.CreatedAt.Local().Format("2006-01-02 15:04"))
	field("Updated", an.UpdatedAt.Local().Format("2006-01-02 15:04"))
	return nil
}

// Stats prints herd totals by type and health.
func (a *App) Stats(ctx context.Context) error {
	st, err := a.animals.Statistics(ctx)
	if err != nil {
		return a.fail(ctx, "stats", err)
	}
	p := a.palette()

	a.printf("%s %d\n", p.accent.Render("Total animals:"), st.Total)
	if st.AverageWeight > 0 {
		a.printf("Average weight: %.1f kg\n", st.AverageWeight)
	}
	for _, t := range models.AnimalTypes {
		if n := st.ByType[t]; n > 0 {
			a.printf("  %-10s %d\n", t, n)
		}
	}
	for _, h := range models.HealthStatuses {
		if n := st.ByHealth[h]; n > 0 {
			a.printf("  %-10s %d\n", h, n)
		}
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
