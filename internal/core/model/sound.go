package model

// Sound names a completion sound.
type Sound string

const (
	SoundOff       Sound = "Off"
	SoundPing      Sound = "Ping"
	SoundPop       Sound = "Pop"
	SoundSubmarine Sound = "Submarine"
	SoundBasso     Sound = "Basso"
	SoundTink      Sound = "Tink"
	SoundGlass     Sound = "Glass"
	SoundHero      Sound = "Hero"
)

var sounds = []Sound{
	SoundOff,
	SoundPing,
	SoundPop,
	SoundSubmarine,
	SoundBasso,
	SoundTink,
	SoundGlass,
	SoundHero,
}

// Sounds returns the selectable sounds in menu order, Off first.
func Sounds() []Sound {
	return append([]Sound(nil), sounds...)
}

// ParseSound maps a name onto the fixed sound set. Unknown names become SoundOff.
func ParseSound(name string) Sound {
	for _, sound := range sounds {
		if string(sound) == name {
			return sound
		}
	}
	return SoundOff
}

// Audible reports whether the sound should be played at all.
func (sound Sound) Audible() bool {
	return sound != SoundOff && sound != ""
}

func (sound Sound) String() string {
	return string(sound)
}
