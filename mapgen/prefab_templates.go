package mapgen

// RoomVaults lists the stock room vaults.
var RoomVaults = []PrefabRoom{
	{Template: totallyNotATrap, Width: 5, Height: 5, FirstDepth: 2, LastDepth: 100},
	{Template: sillySmile, Width: 6, Height: 6, FirstDepth: 2, LastDepth: 100, Flips: true},
	{Template: goblinDen, Width: 7, Height: 7, FirstDepth: 3, LastDepth: 100, Flips: true},
	{Template: pillarHall, Width: 7, Height: 5, FirstDepth: 4, LastDepth: 100, Flips: true},
}

const totallyNotATrap = `
     
 ^^^ 
 ^!^ 
 ^^^ 
     
`

const sillySmile = `
      
 ^  ^ 
  #   
      
 ###  
      
`

const goblinDen = `
       
 ## ## 
 #g g# 
   %   
 #g g# 
 ## ## 
       
`

const pillarHall = `
       
 # # # 
  o !  
 # # # 
       
`

// UndergroundFort is a walled fort stamped on the right side of a level.
var UndergroundFort = PrefabSection{Template: undergroundFort, Width: 15, Height: 13, X: AlignRight, Y: AlignMiddle}

const undergroundFort = `
###############
#.............#
..#####.#####.#
#.#...#.#...#.#
#.#.g.....o.#.#
#.....#.#.....#
..#.o.#%#.g.#..
#.....#.#.....#
#.#.g.....o.#.#
#.#...#.#...#.#
..#####.#####.#
#......O!.....#
#######.#######
`

// OrcCamp is a moated camp stamped in the middle of a level.
var OrcCamp = PrefabSection{Template: orcCamp, Width: 12, Height: 12, X: AlignCenter, Y: AlignMiddle}

const orcCamp = `
≈≈≈≈o≈≈≈≈≈≈≈
≈☼      ☼≈≈≈
≈ g        ≈
≈          ≈
≈    g     ≈
o    O     o
≈          ≈
≈ g        ≈
≈    g     ≈
≈          ≈
≈☼      ☼  ≈
≈≈≈≈o≈≈≈≈≈≈≈
`

// DrowEntry is the dark elf outpost guarding the way down from the
// mushroom grove.
var DrowEntry = PrefabSection{Template: drowEntry, Width: 12, Height: 10, X: AlignCenter, Y: AlignMiddle}

const drowEntry = `
            
 ########## 
 #        # 
 #   e    # 
 #        # 
 #   >    # 
 #  e  e  # 
 #        # 
 ####  #### 
            
`
