package postgres

// SQL queries for directory lookups

const (
	queryContentItem = `
		SELECT id, title, permalink, level
		FROM content_items
		WHERE id = $1
	`

	// queryCategories returns the category chain in its stored order, each row
	// with its parent category link ('' at the top of the tree).
	queryCategories = `
		SELECT c.id, c.link, COALESCE(p.link, '')
		FROM content_categories cc
		JOIN categories c ON c.id = cc.category_id
		LEFT JOIN categories p ON p.id = c.parent_id
		WHERE cc.content_id = $1
		ORDER BY cc.position ASC
	`

	queryLevelObjectives = `
		SELECT l.permalink, o.objective
		FROM levels l
		JOIN level_objectives o ON o.level_id = l.id
		WHERE l.category_id = $1
		  AND l.level = $2
		ORDER BY l.id ASC, o.position ASC
	`

	queryUser = `
		SELECT id, email, display_name, role, section_label
		FROM users
		WHERE id = $1
	`

	// queryUsersByRole filters by section only when $2 is non-empty.
	queryUsersByRole = `
		SELECT id, email, display_name, role, section_label
		FROM users
		WHERE role = $1
		  AND ($2 = '' OR section_label = $2)
		ORDER BY id ASC
	`

	// querySections lists every section; labels are derived in Go.
	querySections = `
		SELECT uuid, name, semester, year, grade_a_points, grade_a_project_points
		FROM course_sections
		ORDER BY year ASC, semester ASC, name ASC
	`
)
