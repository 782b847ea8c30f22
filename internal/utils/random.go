package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/koesert/Rooster-Systeem-sub000/internal/calendar"
	"github.com/koesert/Rooster-Systeem-sub000/internal/domain"
	"github.com/mozillazg/go-pinyin"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var roles = []domain.Role{
	domain.RoleEmployee,
	domain.RoleShiftLeader,
	domain.RoleManager,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

var shiftNotes = []string{
	"", "", "", "开店", "关店", "吧台", "后厨支援", "外送高峰",
}

// 随机生成一个班次，约一成概率是无结束时间的收尾班
func GenerateRandomShift(userID int64, date calendar.Date) *domain.Shift {
	startHour := rand.Intn(12) + 9 // 9~20 点开工
	startMinute := rand.Intn(2) * 30
	start := fmt.Sprintf("%02d:%02d:00", startHour, startMinute)

	shift := &domain.Shift{
		UserID:    userID,
		Date:      date,
		StartTime: start,
		Standby:   rand.Intn(10) == 0,
		Note:      shiftNotes[rand.Intn(len(shiftNotes))],
	}

	if rand.Intn(10) == 0 {
		shift.OpenEnded = true
		return shift
	}

	endHour := startHour + rand.Intn(6) + 2
	if endHour > 23 {
		endHour = 23
	}
	end := fmt.Sprintf("%02d:%02d:00", endHour, startMinute)
	shift.EndTime = &end

	return shift
}

var availabilityNotes = []string{
	"", "", "", "晚上有课", "只能上午", "需要早点走",
}

// 随机生成一天的可用性，nil 表示这一天保持未填写
func GenerateRandomAvailabilityMutation(userID int64, date calendar.Date) *domain.AvailabilityMutation {
	switch rand.Intn(4) {
	case 0:
		return nil
	case 1:
		status := domain.AvailabilityNotAvailable
		return &domain.AvailabilityMutation{UserID: userID, Date: date, Status: &status}
	default:
		status := domain.AvailabilityAvailable
		return &domain.AvailabilityMutation{
			UserID: userID,
			Date:   date,
			Status: &status,
			Note:   availabilityNotes[rand.Intn(len(availabilityNotes))],
		}
	}
}

var timeOffReasons = []string{
	"回老家探亲", "家里有事", "看病复诊", "朋友婚礼", "学校考试", "出门旅游",
}

// 随机生成一条符合提前期要求的请假申请
func GenerateRandomTimeOffRequest(userID int64, noticeDays int) *domain.TimeOffRequest {
	start := calendar.DateOf(time.Now()).AddDays(noticeDays + rand.Intn(30))
	end := start.AddDays(rand.Intn(5))

	return &domain.TimeOffRequest{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
		Reason:    timeOffReasons[rand.Intn(len(timeOffReasons))],
		Status:    domain.TimeOffPending,
	}
}
