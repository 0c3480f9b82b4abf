// Package models defines the school records managed by the console, the
// authentication payloads and their validation rules.
//
// Struct tags drive three things: `json` names the wire field (snake_case),
// `validate` holds the rules checked before a record is sent, and `label`
// is the prompt shown by interactive forms. Fields without a label are not
// prompted.
package models

import (
	"strconv"
	"strings"
)

// Record is implemented by every collection item.
type Record interface {
	Kind() Kind
	GetID() string
	Columns() []string
	Row() []string
	SearchText() string
}

func joinLower(parts ...string) string {
	return strings.ToLower(strings.Join(parts, " "))
}

type Employee struct {
	ID          ID     `json:"id"`
	Name        string `json:"name" label:"Full name" validate:"notblank,max=120"`
	Email       string `json:"email" label:"Email" validate:"required,email"`
	Phone       string `json:"phone" label:"Mobile number" validate:"required,phone"`
	Designation string `json:"designation" label:"Designation" validate:"notblank,max=80"`
	Department  string `json:"department" label:"Department" validate:"omitempty,max=80"`
	JoiningDate string `json:"joining_date" label:"Joining date (YYYY-MM-DD)" validate:"required,datetime=2006-01-02"`
}

func (Employee) Kind() Kind        { return KindEmployee }
func (e Employee) GetID() string   { return string(e.ID) }
func (Employee) Columns() []string { return []string{"ID", "NAME", "DESIGNATION", "DEPARTMENT", "PHONE"} }
func (e Employee) Row() []string {
	return []string{string(e.ID), e.Name, e.Designation, e.Department, e.Phone}
}
func (e Employee) SearchText() string {
	return joinLower(e.Name, e.Email, e.Phone, e.Designation, e.Department)
}

type Student struct {
	ID            ID     `json:"id"`
	Name          string `json:"name" label:"Full name" validate:"notblank,max=120"`
	AdmissionNo   string `json:"admission_no" label:"Admission number" validate:"notblank,max=30"`
	ClassID       string `json:"class_id" label:"Class ID" validate:"required"`
	SectionID     string `json:"section_id" label:"Section ID" validate:"omitempty"`
	GuardianName  string `json:"guardian_name" label:"Guardian name" validate:"notblank,max=120"`
	GuardianPhone string `json:"guardian_phone" label:"Guardian mobile number" validate:"required,phone"`
	DateOfBirth   string `json:"date_of_birth" label:"Date of birth (YYYY-MM-DD)" validate:"required,datetime=2006-01-02"`
}

func (Student) Kind() Kind      { return KindStudent }
func (s Student) GetID() string { return string(s.ID) }
func (Student) Columns() []string {
	return []string{"ID", "ADMISSION", "NAME", "CLASS", "SECTION", "GUARDIAN"}
}
func (s Student) Row() []string {
	return []string{string(s.ID), s.AdmissionNo, s.Name, s.ClassID, s.SectionID, s.GuardianName}
}
func (s Student) SearchText() string {
	return joinLower(s.Name, s.AdmissionNo, s.GuardianName, s.GuardianPhone)
}

type Class struct {
	ID          ID     `json:"id"`
	Name        string `json:"name" label:"Class name" validate:"notblank,max=60"`
	Code        string `json:"code" label:"Class code" validate:"notblank,max=20"`
	Description string `json:"description" label:"Description" validate:"omitempty,max=500"`
}

func (Class) Kind() Kind           { return KindClass }
func (c Class) GetID() string      { return string(c.ID) }
func (Class) Columns() []string    { return []string{"ID", "CODE", "NAME"} }
func (c Class) Row() []string      { return []string{string(c.ID), c.Code, c.Name} }
func (c Class) SearchText() string { return joinLower(c.Name, c.Code, c.Description) }

type Section struct {
	ID             ID     `json:"id"`
	ClassID        string `json:"class_id" label:"Class ID" validate:"required"`
	Name           string `json:"name" label:"Section name" validate:"notblank,max=30"`
	ClassTeacherID string `json:"class_teacher_id" label:"Class teacher (employee ID)" validate:"omitempty"`
	Capacity       int    `json:"capacity" label:"Capacity" validate:"required,gte=1,lte=200"`
}

func (Section) Kind() Kind      { return KindSection }
func (s Section) GetID() string { return string(s.ID) }
func (Section) Columns() []string {
	return []string{"ID", "CLASS", "NAME", "TEACHER", "CAPACITY"}
}
func (s Section) Row() []string {
	return []string{string(s.ID), s.ClassID, s.Name, s.ClassTeacherID, strconv.Itoa(s.Capacity)}
}
func (s Section) SearchText() string { return joinLower(s.Name, s.ClassID, s.ClassTeacherID) }

type Holiday struct {
	ID          ID     `json:"id"`
	Title       string `json:"title" label:"Title" validate:"notblank,max=120"`
	StartDate   string `json:"start_date" label:"Start date (YYYY-MM-DD)" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" label:"End date (YYYY-MM-DD)" validate:"required,datetime=2006-01-02"`
	Description string `json:"description" label:"Description" validate:"omitempty,max=500"`
}

func (Holiday) Kind() Kind      { return KindHoliday }
func (h Holiday) GetID() string { return string(h.ID) }
func (Holiday) Columns() []string {
	return []string{"ID", "TITLE", "FROM", "TO"}
}
func (h Holiday) Row() []string {
	return []string{string(h.ID), h.Title, h.StartDate, h.EndDate}
}
func (h Holiday) SearchText() string { return joinLower(h.Title, h.Description, h.StartDate) }

// Fee frequencies accepted by the API.
const (
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
	FrequencyAnnual    = "annual"
	FrequencyOneTime   = "one_time"
)

type FeeStructure struct {
	ID        ID      `json:"id"`
	ClassID   string  `json:"class_id" label:"Class ID" validate:"required"`
	Name      string  `json:"name" label:"Fee name" validate:"notblank,max=80"`
	Amount    float64 `json:"amount" label:"Amount" validate:"required,gt=0"`
	Frequency string  `json:"frequency" label:"Frequency (monthly/quarterly/annual/one_time)" validate:"required,oneof=monthly quarterly annual one_time"`
	DueDay    int     `json:"due_day" label:"Due day of month (1-28)" validate:"required,gte=1,lte=28"`
}

func (FeeStructure) Kind() Kind      { return KindFeeStructure }
func (f FeeStructure) GetID() string { return string(f.ID) }
func (FeeStructure) Columns() []string {
	return []string{"ID", "CLASS", "NAME", "AMOUNT", "FREQUENCY", "DUE DAY"}
}
func (f FeeStructure) Row() []string {
	return []string{
		string(f.ID), f.ClassID, f.Name,
		strconv.FormatFloat(f.Amount, 'f', 2, 64), f.Frequency, strconv.Itoa(f.DueDay),
	}
}
func (f FeeStructure) SearchText() string { return joinLower(f.Name, f.ClassID, f.Frequency) }
