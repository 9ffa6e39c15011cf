package scheduler

import "github.com/horarium/timetable-api/internal/models"

type sectionGroup struct {
	course   string
	teacher  string
	meetings []models.Meeting
	seen     map[models.Meeting]struct{}
}

// BuildSections groups catalog rows by section id and parses their schedule
// text, producing one Section per group. Meetings are unioned across the
// group's rows and deduplicated by value; course and teacher come from the
// group's first row (rows within a group are assumed consistent). The
// returned course order is first-seen order, for stable downstream listings.
func BuildSections(rows []models.CatalogRow) (map[string][]models.Section, []string) {
	groups := make(map[string]*sectionGroup)
	sectionOrder := make([]string, 0, len(rows))

	for _, row := range rows {
		group, ok := groups[row.SectionID]
		if !ok {
			group = &sectionGroup{
				course:  row.Course,
				teacher: row.Teacher,
				seen:    make(map[models.Meeting]struct{}),
			}
			groups[row.SectionID] = group
			sectionOrder = append(sectionOrder, row.SectionID)
		}
		for _, meeting := range ParseMeetings(row.RawSchedule) {
			if _, dup := group.seen[meeting]; dup {
				continue
			}
			group.seen[meeting] = struct{}{}
			group.meetings = append(group.meetings, meeting)
		}
	}

	courses := make(map[string][]models.Section)
	courseOrder := make([]string, 0)
	for _, sectionID := range sectionOrder {
		group := groups[sectionID]
		if _, ok := courses[group.course]; !ok {
			courseOrder = append(courseOrder, group.course)
		}
		courses[group.course] = append(courses[group.course], models.Section{
			ID:       sectionID,
			Course:   group.course,
			Teacher:  group.teacher,
			Meetings: group.meetings,
		})
	}
	return courses, courseOrder
}
