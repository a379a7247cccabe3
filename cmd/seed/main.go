package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"flexspaces/internal/database"
	"flexspaces/internal/domain"
	"flexspaces/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Seeds a local database with an admin account, a week of time slots, a few
// rooms and one pre-booked calendar entry so the API is explorable right away.
func main() {
	db, err := database.Connect("flexspaces.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(repository.MigrationModels()...); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM seat_bookings")
	db.Exec("DELETE FROM calendar_entries")
	db.Exec("DELETE FROM room_time_slots")
	db.Exec("DELETE FROM room_images")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM time_slots")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	slotRepo := repository.NewTimeSlotRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := &domain.User{
		Email:        "admin@flexspaces.local",
		PasswordHash: string(adminHash),
		Username:     "admin",
		FullName:     "Platform Admin",
		Role:         domain.RoleAdmin,
		Status:       domain.StatusActive,
		IsActive:     true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatal(err)
	}
	log.Println("Admin created: admin@flexspaces.local / admin123")

	members := make([]*domain.User, 0, 3)
	for i := 1; i <= 3; i++ {
		hash, _ := bcrypt.GenerateFromPassword([]byte("member123"), bcrypt.DefaultCost)
		u := &domain.User{
			Email:        fmt.Sprintf("member%d@flexspaces.local", i),
			PasswordHash: string(hash),
			Username:     fmt.Sprintf("member%d", i),
			FullName:     fmt.Sprintf("Member %d", i),
			Role:         domain.RoleUser,
			Status:       domain.StatusActive,
			IsActive:     true,
		}
		if err := userRepo.Create(ctx, u); err != nil {
			log.Fatal(err)
		}
		members = append(members, u)
	}

	// ================== TIME SLOTS ==================
	log.Println("Creating time slots for the next 7 days...")

	type slotSpec struct {
		period domain.DayPeriod
		name   string
		start  string
		end    string
	}
	specs := []slotSpec{
		{domain.PeriodMorning, "Morning Session", "09:00", "12:00"},
		{domain.PeriodAfternoon, "Afternoon Session", "13:00", "17:00"},
		{domain.PeriodEvening, "Evening Session", "18:00", "21:00"},
	}

	today := time.Now().Truncate(24 * time.Hour)
	slotIDs := make([]int64, 0, 21)
	var firstSlotID int64
	for d := 0; d < 7; d++ {
		date := today.AddDate(0, 0, d)
		for _, sp := range specs {
			slot := &domain.TimeSlot{
				Date:      date,
				DayPeriod: sp.period,
				SlotName:  sp.name,
				StartTime: sp.start,
				EndTime:   sp.end,
			}
			if err := slotRepo.Create(ctx, slot); err != nil {
				log.Fatal(err)
			}
			slotIDs = append(slotIDs, slot.ID)
			if firstSlotID == 0 {
				firstSlotID = slot.ID
			}
		}
	}

	// ================== ROOMS ==================
	log.Println("Creating rooms...")

	roomDefs := []struct {
		name      string
		capacity  int
		price     float64
		amenities []string
	}{
		{"Focus Pod", 2, 3000, []string{"whiteboard", "monitor"}},
		{"Team Room A", 8, 8000, []string{"projector", "whiteboard", "conference phone"}},
		{"Event Hall", 40, 25000, []string{"stage", "sound system", "projector"}},
	}

	var firstRoomID int64
	for _, def := range roomDefs {
		room := &domain.Room{
			Name:            def.name,
			Capacity:        def.capacity,
			Status:          domain.RoomUpcoming,
			PricePerSession: def.price,
			Amenities:       def.amenities,
			TimeSlotIDs:     slotIDs,
			IsActive:        true,
			CreatedBy:       admin.ID,
		}
		if err := roomRepo.Create(ctx, room); err != nil {
			log.Fatal(err)
		}
		if firstRoomID == 0 {
			firstRoomID = room.ID
		}
	}

	// ================== CALENDAR ==================
	log.Println("Creating a sample calendar entry with bookings...")

	entry := &domain.CalendarEntry{
		RoomID:        firstRoomID,
		TimeSlotID:    firstSlotID,
		TotalCapacity: 2,
		SeatsBooked:   1,
		BookedBy: []domain.SeatBooking{
			{UserID: members[0].ID, Seats: 1},
		},
	}
	if err := calendarRepo.Create(ctx, entry); err != nil {
		log.Fatal(err)
	}

	log.Println("Seed completed!")
	log.Println("Admin: admin@flexspaces.local / admin123")
	log.Println("Members: member1..member3@flexspaces.local / member123")
}
