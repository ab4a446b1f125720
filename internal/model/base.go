package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// assignID fills a nil primary key before insert. The Postgres schema also
// has gen_random_uuid() defaults, but setting it here keeps the returned row
// usable without a RETURNING round-trip and works on SQLite in tests.
func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (u *AuthUser) BeforeCreate(_ *gorm.DB) error        { assignID(&u.ID); return nil }
func (p *Profile) BeforeCreate(_ *gorm.DB) error         { assignID(&p.ID); return nil }
func (c *Customer) BeforeCreate(_ *gorm.DB) error        { assignID(&c.ID); return nil }
func (o *Order) BeforeCreate(_ *gorm.DB) error           { assignID(&o.ID); return nil }
func (i *OrderItem) BeforeCreate(_ *gorm.DB) error       { assignID(&i.ID); return nil }
func (a *ShippingAddress) BeforeCreate(_ *gorm.DB) error { assignID(&a.ID); return nil }
func (t *Tracking) BeforeCreate(_ *gorm.DB) error        { assignID(&t.ID); return nil }
func (p *Product) BeforeCreate(_ *gorm.DB) error         { assignID(&p.ID); return nil }
func (v *ProductVariant) BeforeCreate(_ *gorm.DB) error  { assignID(&v.ID); return nil }
func (i *Invoice) BeforeCreate(_ *gorm.DB) error         { assignID(&i.ID); return nil }
func (r *Revenue) BeforeCreate(_ *gorm.DB) error         { assignID(&r.ID); return nil }
