// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"pmctl/internal/service"
)

const (
	// SectionSeparator is the separator line around section headers.
	SectionSeparator = "------------"
)

var badgeColors = map[string]*color.Color{
	service.StatusTodo:       color.New(color.FgWhite),
	service.StatusInProgress: color.New(color.FgCyan),
	service.StatusReview:     color.New(color.FgYellow),
	service.StatusCompleted:  color.New(color.FgGreen),
	service.StatusCancelled:  color.New(color.FgRed),
	"active":                 color.New(color.FgCyan),
	"planning":               color.New(color.FgWhite),
	"on_hold":                color.New(color.FgYellow),
	service.PriorityHigh:     color.New(color.FgRed, color.Bold),
	service.PriorityMedium:   color.New(color.FgYellow),
	service.PriorityLow:      color.New(color.FgHiBlack),
}

// Badge renders a status or priority, coloured when the terminal supports it.
func Badge(value string) string {
	if value == "" {
		return "-"
	}
	if c, ok := badgeColors[value]; ok {
		return c.Sprint(value)
	}
	return value
}

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// Section writes a header framed by separator lines.
func Section(w io.Writer, title string) {
	fmt.Fprintln(w, SectionSeparator)
	fmt.Fprintln(w, normalizeTitle(title))
	fmt.Fprintln(w, SectionSeparator)
}

// Projects writes one row per project.
func Projects(w io.Writer, projects []service.Project) {
	tw := table(w)
	fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tPRIORITY\tOWNER\tTASKS\tEND")
	for _, p := range projects {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%s\n",
			p.ID, normalizeTitle(p.Title), Badge(p.Status), Badge(p.Priority), dash(p.OwnerName), p.TaskCount, dash(p.EndDate))
	}
	tw.Flush()
}

// Project writes a project summary.
func Project(w io.Writer, p service.Project) {
	tw := table(w)
	fmt.Fprintf(tw, "Project:\t#%d %s\n", p.ID, normalizeTitle(p.Title))
	fmt.Fprintf(tw, "Type:\t%s\n", dash(p.ProjectType))
	fmt.Fprintf(tw, "Status:\t%s\n", Badge(p.Status))
	fmt.Fprintf(tw, "Priority:\t%s\n", Badge(p.Priority))
	fmt.Fprintf(tw, "Owner:\t%s\n", dash(p.OwnerName))
	fmt.Fprintf(tw, "Dates:\t%s .. %s\n", dash(p.StartDate), dash(p.EndDate))
	fmt.Fprintf(tw, "Tasks:\t%d\n", p.TaskCount)
	fmt.Fprintf(tw, "Labels:\t%d\n", p.LabelsCount)
	tw.Flush()
}

// Tasks writes one row per task.
func Tasks(w io.Writer, tasks []service.Task) {
	tw := table(w)
	fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tPRIORITY\tASSIGNEE\tDUE\tDONE")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, normalizeTitle(t.Title), Badge(t.Status), Badge(t.Priority), assigneeName(t), dash(t.DueDate), percent(t.DonePercentage))
	}
	tw.Flush()
}

// TaskItems writes one row per compact task.
func TaskItems(w io.Writer, tasks []service.TaskListItem) {
	tw := table(w)
	fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tPRIORITY\tASSIGNEE\tDUE\tDONE")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, normalizeTitle(t.Title), Badge(t.Status), Badge(t.Priority), dash(t.AssigneeName), dash(t.DueDate), percent(t.DonePercentage))
	}
	tw.Flush()
}

// TaskDetail writes a task followed by its subtasks.
func TaskDetail(w io.Writer, t service.Task, subtasks []service.SubtaskListItem) {
	tw := table(w)
	fmt.Fprintf(tw, "Task:\t#%d %s\n", t.ID, normalizeTitle(t.Title))
	if t.ProjectDetails != nil {
		fmt.Fprintf(tw, "Project:\t#%d %s\n", t.Project, normalizeTitle(t.ProjectDetails.Title))
	} else {
		fmt.Fprintf(tw, "Project:\t#%d\n", t.Project)
	}
	fmt.Fprintf(tw, "Status:\t%s\n", Badge(t.Status))
	fmt.Fprintf(tw, "Priority:\t%s\n", Badge(t.Priority))
	fmt.Fprintf(tw, "Type:\t%s\n", dash(t.TaskType))
	fmt.Fprintf(tw, "Assignee:\t%s\n", assigneeName(t))
	fmt.Fprintf(tw, "Due:\t%s\n", dash(t.DueDate))
	fmt.Fprintf(tw, "Done:\t%s\n", percent(t.DonePercentage))
	if len(t.LabelsDetails) > 0 {
		names := make([]string, len(t.LabelsDetails))
		for i, l := range t.LabelsDetails {
			names[i] = l.Name
		}
		fmt.Fprintf(tw, "Labels:\t%s\n", strings.Join(names, ", "))
	}
	tw.Flush()

	if desc := strings.TrimSpace(t.Description); desc != "" {
		fmt.Fprintf(w, "\n%s\n", desc)
	}
	if len(subtasks) > 0 {
		fmt.Fprintln(w)
		Subtasks(w, subtasks)
	}
}

// Subtasks writes a checklist of subtasks.
func Subtasks(w io.Writer, subtasks []service.SubtaskListItem) {
	for _, s := range subtasks {
		mark := " "
		if s.IsCompleted {
			mark = "x"
		}
		fmt.Fprintf(w, "  [%s] %4d  %s\n", mark, s.ID, normalizeTitle(s.Title))
	}
}

// Board writes tasks grouped into one section per status, in board order.
// Statuses outside the known set are grouped last.
func Board(w io.Writer, tasks []service.TaskListItem) {
	columns := make(map[string][]service.TaskListItem)
	for _, t := range tasks {
		columns[t.Status] = append(columns[t.Status], t)
	}

	order := append([]string(nil), service.TaskStatuses...)
	known := make(map[string]bool, len(order))
	for _, s := range order {
		known[s] = true
	}
	for _, t := range tasks {
		if !known[t.Status] {
			known[t.Status] = true
			order = append(order, t.Status)
		}
	}

	for _, status := range order {
		col := columns[status]
		Section(w, fmt.Sprintf("%s (%d)", strings.ToUpper(strings.ReplaceAll(status, "_", " ")), len(col)))
		for _, t := range col {
			fmt.Fprintf(w, "    %4d  %s\n", t.ID, normalizeTitle(t.Title))
		}
	}
}

// Departments writes one row per department.
func Departments(w io.Writer, depts []service.Department) {
	tw := table(w)
	fmt.Fprintln(tw, "ID\tNAME\tLEAD\tMEMBERS")
	for _, d := range depts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", d.ID, normalizeTitle(d.Name), dash(d.DepartmentLeadName), d.MemberCount)
	}
	tw.Flush()
}

// DepartmentDetail writes a department with its members.
func DepartmentDetail(w io.Writer, d service.DepartmentDetails) {
	tw := table(w)
	fmt.Fprintf(tw, "Department:\t#%d %s\n", d.ID, normalizeTitle(d.Name))
	if d.DepartmentLeadDetails != nil {
		fmt.Fprintf(tw, "Lead:\t%s\n", displayName(*d.DepartmentLeadDetails))
	}
	fmt.Fprintf(tw, "Members:\t%d\n", d.MemberCount)
	tw.Flush()
	if desc := strings.TrimSpace(d.Description); desc != "" {
		fmt.Fprintf(w, "\n%s\n", desc)
	}
	if len(d.MembersDetails) > 0 {
		fmt.Fprintln(w)
		members(w, d.MembersDetails)
	}
}

// MyDepartment writes the caller's department, its members and projects.
func MyDepartment(w io.Writer, r service.MyDepartmentResponse) {
	d := r.Department
	tw := table(w)
	fmt.Fprintf(tw, "Department:\t#%d %s\n", d.ID, normalizeTitle(d.Name))
	if role := r.UserRoleInDepartment; role != "" {
		fmt.Fprintf(tw, "Your role:\t%s\n", role)
	}
	if d.DepartmentLeadDetails != nil {
		fmt.Fprintf(tw, "Lead:\t%s\n", displayName(d.DepartmentLeadDetails.UserDetails))
	}
	fmt.Fprintf(tw, "Members:\t%d\n", d.MemberCount)
	fmt.Fprintf(tw, "Projects:\t%d (%d active, %d completed)\n", d.ProjectCount, d.ActiveProjectCount, d.CompletedProjectCount)
	fmt.Fprintf(tw, "Tasks:\t%d\n", d.TotalTasksCount)
	tw.Flush()

	if len(d.MembersDetails) > 0 {
		fmt.Fprintln(w)
		Section(w, "Members")
		users := make([]service.UserDetails, len(d.MembersDetails))
		for i, m := range d.MembersDetails {
			users[i] = m.UserDetails
		}
		members(w, users)
	}
	if len(d.Projects) > 0 {
		fmt.Fprintln(w)
		Section(w, "Projects")
		tw := table(w)
		for _, p := range d.Projects {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, normalizeTitle(p.Title), Badge(p.Status), Badge(p.Priority))
		}
		tw.Flush()
	}
}

func members(w io.Writer, users []service.UserDetails) {
	tw := table(w)
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", u.ID, displayName(u), u.Email)
	}
	tw.Flush()
}

// Labels writes one row per label.
func Labels(w io.Writer, labels []service.Label) {
	tw := table(w)
	fmt.Fprintln(tw, "ID\tNAME\tCOLOR\tACTIVE")
	for _, l := range labels {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", l.ID, normalizeTitle(l.Name), dash(l.Color), yesNo(l.IsActive))
	}
	tw.Flush()
}

// Users writes a page of the user directory.
func Users(w io.Writer, r service.UserListResponse) {
	tw := table(w)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL")
	for _, u := range r.Users {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", u.ID, dash(u.FullName), u.Email)
	}
	tw.Flush()
	if p := r.Pagination; p.TotalPages > 1 {
		fmt.Fprintf(w, "page %d of %d (%d users)\n", p.CurrentPage, p.TotalPages, p.TotalUsers)
	}
}

// AdminUsers writes full user records.
func AdminUsers(w io.Writer, r service.AdminUserListResponse) {
	tw := table(w)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tACTIVE")
	for _, u := range r.Users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", u.ID, displayName(u.UserDetails), u.Email, dash(u.Role), yesNo(u.IsActive))
	}
	tw.Flush()
	if p := r.Pagination; p.TotalPages > 1 {
		fmt.Fprintf(w, "page %d of %d (%d users)\n", p.CurrentPage, p.TotalPages, p.TotalUsers)
	}
}

// Profile writes a user profile.
func Profile(w io.Writer, u service.UserProfile) {
	tw := table(w)
	fmt.Fprintf(tw, "User:\t#%d %s\n", u.ID, displayName(u.UserDetails))
	fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
	fmt.Fprintf(tw, "Role:\t%s\n", dash(u.Role))
	fmt.Fprintf(tw, "Active:\t%s\n", yesNo(u.IsActive))
	if u.LastSignInAt != nil {
		fmt.Fprintf(tw, "Last sign-in:\t%s\n", *u.LastSignInAt)
	}
	tw.Flush()
}

// Roles writes one row per role assignment.
func Roles(w io.Writer, roles []service.UserRole) {
	tw := table(w)
	fmt.Fprintln(tw, "ID\tUSER\tROLE")
	for _, r := range roles {
		user := fmt.Sprintf("#%d", r.User)
		if r.UserDetails != nil {
			user = displayName(*r.UserDetails)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", r.ID, user, r.Role)
	}
	tw.Flush()
}

// UserRole writes the role of a single user.
func UserRole(w io.Writer, r service.UserRoleResponse) {
	name := r.FullName
	if name == "" {
		name = r.Email
	}
	if !r.HasRole || r.Role == nil {
		fmt.Fprintf(w, "%s has no role\n", dash(name))
		return
	}
	fmt.Fprintf(w, "%s: %s\n", dash(name), *r.Role)
}

// Dashboard writes the dashboard totals and the caller's open work.
func Dashboard(w io.Writer, d service.Dashboard) {
	tw := table(w)
	fmt.Fprintf(tw, "Projects:\t%d\n", d.TotalProjects)
	fmt.Fprintf(tw, "Tasks:\t%d (%d completed, %d pending)\n", d.TotalTasks, d.CompletedTasks, d.PendingTasks)
	fmt.Fprintf(tw, "Subtasks:\t%d\n", d.TotalSubtasks)
	tw.Flush()

	if len(d.Projects) > 0 {
		fmt.Fprintln(w)
		Section(w, "Projects")
		Projects(w, d.Projects)
	}
	if len(d.Tasks) > 0 {
		fmt.Fprintln(w)
		Section(w, "Tasks")
		TaskItems(w, d.Tasks)
	}
}

// normalizeTitle normalizes a title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

func displayName(u service.UserDetails) string {
	if name := strings.TrimSpace(u.FullName); name != "" {
		return name
	}
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		return name
	}
	return u.Email
}

func assigneeName(t service.Task) string {
	if t.AssigneeDetails != nil {
		return displayName(*t.AssigneeDetails)
	}
	if t.Assignee != 0 {
		return fmt.Sprintf("#%d", t.Assignee)
	}
	return "-"
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func percent(v float64) string {
	return fmt.Sprintf("%.0f%%", v)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
