package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/hrms-dev/hrms/backend/internal/domain"
	"github.com/mozillazg/go-pinyin"
	"github.com/shopspring/decimal"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "庆",
	"建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

var positions = map[domain.Department][]string{
	domain.DepartmentIT:         {"Software Engineer", "Senior Developer", "System Administrator", "QA Engineer"},
	domain.DepartmentHR:         {"HR Specialist", "HR Assistant", "Recruiter"},
	domain.DepartmentFinance:    {"Accountant", "Financial Analyst", "Controller"},
	domain.DepartmentMarketing:  {"Marketing Manager", "Content Writer", "SEO Specialist"},
	domain.DepartmentOperations: {"Operations Coordinator", "Logistics Planner"},
	domain.DepartmentSales:      {"Sales Representative", "Account Executive"},
}

var statuses = []domain.EmployeeStatus{
	domain.EmployeeStatusActive,
	domain.EmployeeStatusActive,
	domain.EmployeeStatusActive,
	domain.EmployeeStatusInactive,
	domain.EmployeeStatusTerminated,
}

var digits = "0123456789"

// GenerateRandomChineseName returns a surname and a one or two character given name.
func GenerateRandomChineseName() (string, string) {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	given := ""

	for i := 0; i < nameLength; i++ {
		given += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname, given
}

// Romanize converts hanzi to capitalized pinyin without tones, e.g. 王伟 -> Wangwei.
func Romanize(hanzi string) string {
	syllables := pinyin.LazyConvert(hanzi, nil)
	romanized := strings.Join(syllables, "")
	if romanized == "" {
		return ""
	}
	return strings.ToUpper(romanized[:1]) + romanized[1:]
}

func GenerateRandomPhone() string {
	phone := "+86"
	for i := 0; i < 11; i++ {
		phone += string(digits[rand.Intn(len(digits))])
	}
	return phone
}

// GenerateRandomEmployee builds a valid employee without an employee id; the id is
// assigned when the record is stored.
func GenerateRandomEmployee(emailDomain string) *domain.Employee {
	surname, given := GenerateRandomChineseName()
	firstName := Romanize(given)
	lastName := Romanize(surname)

	suffix := ""
	suffixLength := rand.Intn(3) + 1
	for i := 0; i < suffixLength; i++ {
		suffix += string(digits[rand.Intn(len(digits))])
	}

	department := domain.Departments[rand.Intn(len(domain.Departments))]
	titles := positions[department]

	return &domain.Employee{
		FirstName:  firstName,
		LastName:   lastName,
		Email:      strings.ToLower(firstName+"."+lastName+suffix) + "@" + emailDomain,
		Phone:      GenerateRandomPhone(),
		Department: department,
		Position:   titles[rand.Intn(len(titles))],
		Salary:     decimal.NewFromInt(int64(30000 + rand.Intn(90)*1000)),
		HireDate:   time.Now().AddDate(0, 0, -rand.Intn(365*5)).Truncate(24 * time.Hour),
		Status:     statuses[rand.Intn(len(statuses))],
	}
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}
